package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexfacts-backend/models"

	"github.com/google/uuid"
)

const (
	// matchCount and matchThreshold parameterize the similarity search
	matchCount     = 5
	matchThreshold = 0.5

	// contextSeparator joins retrieved chunks in the grounding prompt
	contextSeparator = "\n\n---\n\n"

	// noContextPlaceholder stands in for the context when retrieval
	// comes back empty
	noContextPlaceholder = "Aucune information pertinente trouvée."
)

// chatSystemTemplate binds the model strictly to the retrieved context
const chatSystemTemplate = `
Tu es un assistant juridique. Ta mission est de répondre à la question de l'avocat en te basant **uniquement** sur le contexte suivant, extrait des documents du dossier.
Si le contexte ne contient pas la réponse, dis "Je ne trouve pas cette information dans les documents."

CONTEXTE :
%s
`

var (
	ErrEmbeddingFailed  = errors.New("failed to embed question")
	ErrRetrievalFailed  = errors.New("failed to retrieve dossier context")
	ErrGenerationFailed = errors.New("failed to generate answer")
)

// ChunkMatcher performs a dossier-scoped similarity search
type ChunkMatcher interface {
	Match(ctx context.Context, embedding []float32, dossierID uuid.UUID, threshold float64, limit int) ([]models.ChunkMatch, error)
}

// ChatService answers questions grounded in a dossier's document chunks
type ChatService struct {
	embedder  Embedder
	chunks    ChunkMatcher
	generator ContentGenerator
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithEmbedder sets the embedder
func ChatWithEmbedder(embedder Embedder) ChatServiceOption {
	return func(s *ChatService) {
		s.embedder = embedder
	}
}

// ChatWithChunkMatcher sets the chunk similarity store
func ChatWithChunkMatcher(chunks ChunkMatcher) ChatServiceOption {
	return func(s *ChatService) {
		s.chunks = chunks
	}
}

// ChatWithGenerator sets the answer generator
func ChatWithGenerator(generator ContentGenerator) ChatServiceOption {
	return func(s *ChatService) {
		s.generator = generator
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnswerRequest represents a chat question scoped to a dossier
type AnswerRequest struct {
	Question  string
	DossierID uuid.UUID
}

// AnswerResult represents a generated answer
type AnswerResult struct {
	Answer string
}

// Answer embeds the question, retrieves the most similar chunks of the
// dossier, and generates an answer grounded in that context. Empty
// retrieval is not an error: the placeholder context makes the model
// return the refusal phrase.
func (s *ChatService) Answer(ctx context.Context, req AnswerRequest) (*AnswerResult, error) {
	if s.embedder == nil || s.chunks == nil || s.generator == nil {
		return nil, errors.New("chat service not fully configured")
	}

	embedding, err := s.embedder.Embed(ctx, req.Question, QueryEmbedding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	matches, err := s.chunks.Match(ctx, embedding, req.DossierID, matchThreshold, matchCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	contextText := buildContext(matches)
	systemPrompt := fmt.Sprintf(chatSystemTemplate, contextText)

	answer, err := s.generator.Generate(ctx, systemPrompt, req.Question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &AnswerResult{Answer: answer}, nil
}

// buildContext joins the retrieved chunks with a visible separator, or
// falls back to the placeholder when nothing was retrieved
func buildContext(matches []models.ChunkMatch) string {
	if len(matches) == 0 {
		return noContextPlaceholder
	}
	contents := make([]string, len(matches))
	for i, m := range matches {
		contents[i] = m.Content
	}
	return strings.Join(contents, contextSeparator)
}
