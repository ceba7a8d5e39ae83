package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexfacts-backend/models"

	"github.com/google/uuid"
)

// mockGenerator implements ContentGenerator with a configurable function field
type mockGenerator struct {
	lastSystemPrompt string
	lastUserText     string
	generateFunc     func(systemPrompt, userText string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt, userText string) (string, error) {
	m.lastSystemPrompt = systemPrompt
	m.lastUserText = userText
	return m.generateFunc(systemPrompt, userText)
}

func TestFactExtractorParsesResponse(t *testing.T) {
	generator := &mockGenerator{generateFunc: func(_, _ string) (string, error) {
		return `{"faits": [
			{"date_fait": "2023-05-12", "description": "Notification du rejet de l'offre", "acteurs": "Pouvoir adjudicateur, Société X", "type_fait": "Rejet"},
			{"date_fait": "null", "description": "Réunion de négociation", "acteurs": "Les parties", "type_fait": "Réunion"}
		]}`, nil
	}}
	extractor := NewFactExtractor(generator)

	dossierID := uuid.New()
	documentID := uuid.New()
	faits, err := extractor.Extract(context.Background(), models.CategoryGeneral, "texte du document", dossierID, documentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faits) != 2 {
		t.Fatalf("expected 2 faits, got %d", len(faits))
	}

	first := faits[0]
	if first.DateFait == nil || *first.DateFait != "2023-05-12" {
		t.Errorf("expected date 2023-05-12, got %v", first.DateFait)
	}
	if first.Description != "Notification du rejet de l'offre" {
		t.Errorf("unexpected description %q", first.Description)
	}
	if first.DossierID != dossierID || first.DocumentID != documentID {
		t.Error("faits should be tagged with the owning dossier and document")
	}

	if faits[1].DateFait != nil {
		t.Errorf(`"null" date should map to nil, got %v`, *faits[1].DateFait)
	}
}

func TestFactExtractorSkipsEmptyDescriptions(t *testing.T) {
	generator := &mockGenerator{generateFunc: func(_, _ string) (string, error) {
		return `{"faits": [
			{"date_fait": "2024-01-01", "description": "", "acteurs": "", "type_fait": ""},
			{"date_fait": "2024-01-02", "description": "   ", "acteurs": "", "type_fait": ""},
			{"date_fait": "2024-01-03", "description": "Fait valide", "acteurs": "A", "type_fait": "Email"}
		]}`, nil
	}}
	extractor := NewFactExtractor(generator)

	faits, err := extractor.Extract(context.Background(), models.CategoryGeneral, "texte", uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faits) != 1 {
		t.Fatalf("expected 1 fait, got %d", len(faits))
	}
	if faits[0].Description != "Fait valide" {
		t.Errorf("unexpected description %q", faits[0].Description)
	}
}

func TestFactExtractorEmptyFaits(t *testing.T) {
	generator := &mockGenerator{generateFunc: func(_, _ string) (string, error) {
		return `{"faits": []}`, nil
	}}
	extractor := NewFactExtractor(generator)

	faits, err := extractor.Extract(context.Background(), models.CategoryGeneral, "texte", uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faits) != 0 {
		t.Errorf("expected no faits, got %d", len(faits))
	}
}

func TestFactExtractorMalformedJSON(t *testing.T) {
	generator := &mockGenerator{generateFunc: func(_, _ string) (string, error) {
		return "désolé, je ne peux pas répondre en JSON", nil
	}}
	extractor := NewFactExtractor(generator)

	_, err := extractor.Extract(context.Background(), models.CategoryGeneral, "texte", uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestFactExtractorGeneratorError(t *testing.T) {
	generator := &mockGenerator{generateFunc: func(_, _ string) (string, error) {
		return "", errors.New("model overloaded")
	}}
	extractor := NewFactExtractor(generator)

	_, err := extractor.Extract(context.Background(), models.CategoryGeneral, "texte", uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected the generator error to propagate")
	}
}

func TestFactExtractorPromptSelection(t *testing.T) {
	generator := &mockGenerator{generateFunc: func(_, _ string) (string, error) {
		return `{"faits": []}`, nil
	}}
	extractor := NewFactExtractor(generator)

	_, err := extractor.Extract(context.Background(), models.CategoryMarchePublic, "texte du marché", uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generator.lastSystemPrompt != promptMarchesPublics {
		t.Error("Marché Public dossiers should use the specialized template")
	}
	if !strings.HasPrefix(generator.lastUserText, "Voici le texte à analyser : \n\n") {
		t.Errorf("user text should carry the analysis preamble, got %q", generator.lastUserText)
	}
	if !strings.HasSuffix(generator.lastUserText, "texte du marché") {
		t.Error("user text should end with the document text")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"", nil},
		{"null", nil},
		{"NULL", nil},
		{"  null  ", nil},
		{"2023-09-01", strPtr("2023-09-01")},
		{" 2023-09-01 ", strPtr("2023-09-01")},
	}
	for _, tt := range tests {
		got := normalizeDate(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("normalizeDate(%q) = %q, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("normalizeDate(%q) = %v, want %q", tt.in, got, *tt.want)
		}
	}
}

func strPtr(s string) *string { return &s }
