package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const (
	embeddingModelName  = "text-embedding-004"
	extractionModelName = "gemini-2.5-pro"
	chatModelName       = "gemini-2.5-flash"
)

// ContentGenerator invokes a generative model with a system-level
// instruction and user content, returning the raw response text
type ContentGenerator interface {
	Generate(ctx context.Context, systemPrompt, userText string) (string, error)
}

// GeminiEmbedder implements Embedder using the Gemini embedding API
// (768-dimensional vectors)
type GeminiEmbedder struct {
	client *genai.Client
}

// NewGeminiEmbedder creates an embedder backed by the shared Gemini client
func NewGeminiEmbedder(client *genai.Client) *GeminiEmbedder {
	return &GeminiEmbedder{client: client}
}

// Embed returns the embedding vector for a text in the given mode
func (e *GeminiEmbedder) Embed(ctx context.Context, text string, mode EmbeddingMode) ([]float32, error) {
	em := e.client.EmbeddingModel(embeddingModelName)
	switch mode {
	case QueryEmbedding:
		em.TaskType = genai.TaskTypeRetrievalQuery
	default:
		em.TaskType = genai.TaskTypeRetrievalDocument
	}

	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding call failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding call returned no values")
	}
	return res.Embedding.Values, nil
}

// GeminiFactModel is the high-precision generation variant used for fact
// extraction. The response is constrained to the faits JSON schema by the
// provider.
type GeminiFactModel struct {
	client *genai.Client
}

// NewGeminiFactModel creates the schema-constrained extraction model
func NewGeminiFactModel(client *genai.Client) *GeminiFactModel {
	return &GeminiFactModel{client: client}
}

// Generate runs the extraction model and returns its raw JSON text
func (g *GeminiFactModel) Generate(ctx context.Context, systemPrompt, userText string) (string, error) {
	model := g.client.GenerativeModel(extractionModelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = faitsResponseSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}
	return responseText(resp)
}

// faitsResponseSchema declares the provider-enforced output contract: an
// object with a "faits" array of four string-typed fields
func faitsResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"faits": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date_fait":   {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"acteurs":     {Type: genai.TypeString},
						"type_fait":   {Type: genai.TypeString},
					},
					Required: []string{"date_fait", "description", "acteurs", "type_fait"},
				},
			},
		},
		Required: []string{"faits"},
	}
}

// GeminiChatModel is the latency-optimized generation variant used for
// interactive chat answers
type GeminiChatModel struct {
	client *genai.Client
}

// NewGeminiChatModel creates the chat model
func NewGeminiChatModel(client *genai.Client) *GeminiChatModel {
	return &GeminiChatModel{client: client}
}

// Generate runs the chat model with the grounding system prompt
func (g *GeminiChatModel) Generate(ctx context.Context, systemPrompt, userText string) (string, error) {
	model := g.client.GenerativeModel(chatModelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}
	return responseText(resp)
}

// responseText concatenates the text parts of a generation response
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("generation returned no candidates")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}

	result := builder.String()
	if result == "" {
		return "", fmt.Errorf("generation returned empty content")
	}
	return result, nil
}
