package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents the processing status of a document.
// Transitions are monotonic: A traiter -> En cours -> Traité | Erreur.
type DocumentStatus string

const (
	StatusATraiter DocumentStatus = "A traiter"
	StatusEnCours  DocumentStatus = "En cours"
	StatusTraite   DocumentStatus = "Traité"
	StatusErreur   DocumentStatus = "Erreur"
)

// Document represents an uploaded case document (PDF)
type Document struct {
	ID           uuid.UUID      `json:"id"`
	DossierID    uuid.UUID      `json:"dossier_id"`
	Nom          string         `json:"nom"`
	FichierURL   string         `json:"fichier_url"`
	Statut       DocumentStatus `json:"statut"`
	ErreurDetail *string        `json:"erreur_detail,omitempty"`
	TexteBrut    *string        `json:"texte_brut,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
