package models

import (
	"time"

	"github.com/google/uuid"
)

// DossierCategory determines which fact-extraction prompt template is used
type DossierCategory string

const (
	CategoryGeneral      DossierCategory = "Général"
	CategoryMarchePublic DossierCategory = "Marché Public"
)

// Dossier represents a legal case folder grouping documents and facts
type Dossier struct {
	ID        uuid.UUID       `json:"id"`
	Nom       string          `json:"nom"`
	Type      DossierCategory `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}
