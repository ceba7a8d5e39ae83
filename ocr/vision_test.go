package ocr

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/genproto/googleapis/rpc/status"
)

// fakeAnnotator implements annotator with a configurable function field
type fakeAnnotator struct {
	lastReq      *visionpb.BatchAnnotateImagesRequest
	annotateFunc func(req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)
}

func (f *fakeAnnotator) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error) {
	f.lastReq = req
	return f.annotateFunc(req)
}

func (f *fakeAnnotator) Close() error { return nil }

func textResponse(text string) *visionpb.BatchAnnotateImagesResponse {
	return &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{
			{FullTextAnnotation: &visionpb.TextAnnotation{Text: text}},
		},
	}
}

func TestDetectDocumentTextRequestShape(t *testing.T) {
	fake := &fakeAnnotator{annotateFunc: func(*visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		return textResponse("texte reconnu"), nil
	}}
	c := &VisionClient{client: fake}

	content := []byte("raw pdf bytes")
	got, err := c.DetectDocumentText(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "texte reconnu" {
		t.Errorf("expected annotation text, got %q", got)
	}

	reqs := fake.lastReq.GetRequests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 annotate request, got %d", len(reqs))
	}
	if !bytes.Equal(reqs[0].GetImage().GetContent(), content) {
		t.Error("document bytes should pass through unchanged")
	}
	features := reqs[0].GetFeatures()
	if len(features) != 1 || features[0].GetType() != visionpb.Feature_DOCUMENT_TEXT_DETECTION {
		t.Errorf("expected a single DOCUMENT_TEXT_DETECTION feature, got %v", features)
	}
}

func TestDetectDocumentTextRPCError(t *testing.T) {
	fake := &fakeAnnotator{annotateFunc: func(*visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		return nil, errors.New("rpc error: deadline exceeded")
	}}
	c := &VisionClient{client: fake}

	if _, err := c.DetectDocumentText(context.Background(), []byte("x")); err == nil {
		t.Error("expected the RPC error to propagate")
	}
}

func TestDetectDocumentTextPerImageError(t *testing.T) {
	fake := &fakeAnnotator{annotateFunc: func(*visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		return &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{
				{Error: &status.Status{Message: "image too large"}},
			},
		}, nil
	}}
	c := &VisionClient{client: fake}

	if _, err := c.DetectDocumentText(context.Background(), []byte("x")); err == nil {
		t.Error("expected the per-image error to propagate")
	}
}

func TestDetectDocumentTextNoAnnotation(t *testing.T) {
	fake := &fakeAnnotator{annotateFunc: func(*visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		return &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{{}},
		}, nil
	}}
	c := &VisionClient{client: fake}

	got, err := c.DetectDocumentText(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("a document with no text annotation should yield empty text, got %q", got)
	}
}
