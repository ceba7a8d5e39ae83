package ocr

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// Client extracts text from a scanned document
type Client interface {
	DetectDocumentText(ctx context.Context, content []byte) (string, error)
}

// annotator is the subset of the generated Vision client the OCR wrapper
// uses
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// VisionClient implements Client using the Google Vision API
type VisionClient struct {
	client annotator
}

// NewVisionClient creates a Vision client from service account JSON credentials
func NewVisionClient(ctx context.Context, credentialsJSON []byte) (*VisionClient, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionClient{client: client}, nil
}

// DetectDocumentText runs dense-text OCR on the raw document bytes
func (c *VisionClient) DetectDocumentText(ctx context.Context, content []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: content},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := c.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("document text detection failed: %w", err)
	}

	responses := resp.GetResponses()
	if len(responses) == 0 {
		return "", nil
	}
	if apiErr := responses[0].GetError(); apiErr != nil {
		return "", fmt.Errorf("document text detection failed: %s", apiErr.GetMessage())
	}
	return responses[0].GetFullTextAnnotation().GetText(), nil
}

// Close releases the underlying connection
func (c *VisionClient) Close() error {
	return c.client.Close()
}
