package models

import (
	"time"

	"github.com/google/uuid"
)

// Fait is a structured fact extracted from a document by the model.
// DateFait is an ISO calendar date ("YYYY-MM-DD") or nil when the source
// text does not state one with certainty.
type Fait struct {
	ID          uuid.UUID `json:"id"`
	DossierID   uuid.UUID `json:"dossier_id"`
	DocumentID  uuid.UUID `json:"document_id"`
	DateFait    *string   `json:"date_fait"`
	Description string    `json:"description"`
	Acteurs     string    `json:"acteurs"`
	TypeFait    string    `json:"type_fait"`
	CreatedAt   time.Time `json:"created_at"`
}
