package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"lexfacts-backend/models"

	"github.com/google/uuid"
)

// FactExtractor extracts structured facts from case text with a
// schema-constrained generative model call
type FactExtractor struct {
	generator ContentGenerator
}

// NewFactExtractor creates a fact extractor backed by the given generator
func NewFactExtractor(generator ContentGenerator) *FactExtractor {
	return &FactExtractor{generator: generator}
}

// faitPayload mirrors one element of the model's "faits" array
type faitPayload struct {
	DateFait    string `json:"date_fait"`
	Description string `json:"description"`
	Acteurs     string `json:"acteurs"`
	TypeFait    string `json:"type_fait"`
}

// faitsEnvelope mirrors the model's full JSON response
type faitsEnvelope struct {
	Faits []faitPayload `json:"faits"`
}

// Extract selects the instruction template for the dossier category, runs
// the model over the full document text, and returns the validated facts
// tagged with the owning dossier and document. A model or parse failure
// propagates as a pipeline-level error.
func (e *FactExtractor) Extract(
	ctx context.Context,
	category models.DossierCategory,
	texte string,
	dossierID uuid.UUID,
	documentID uuid.UUID,
) ([]*models.Fait, error) {
	systemPrompt := PromptForCategory(category)
	userText := "Voici le texte à analyser : \n\n" + texte

	raw, err := e.generator.Generate(ctx, systemPrompt, userText)
	if err != nil {
		return nil, fmt.Errorf("fact extraction call failed: %w", err)
	}

	// The provider enforces the schema, but the decode below is the local
	// line of defense against malformed output.
	var envelope faitsEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse fact extraction response: %w", err)
	}

	faits := make([]*models.Fait, 0, len(envelope.Faits))
	for i, payload := range envelope.Faits {
		if strings.TrimSpace(payload.Description) == "" {
			log.Printf("Warning: skipping fait %d with empty description", i)
			continue
		}
		faits = append(faits, &models.Fait{
			DossierID:   dossierID,
			DocumentID:  documentID,
			DateFait:    normalizeDate(payload.DateFait),
			Description: payload.Description,
			Acteurs:     payload.Acteurs,
			TypeFait:    payload.TypeFait,
		})
	}

	return faits, nil
}

// normalizeDate maps the model's uncertain-date markers to SQL NULL
func normalizeDate(date string) *string {
	date = strings.TrimSpace(date)
	if date == "" || strings.EqualFold(date, "null") {
		return nil
	}
	return &date
}
