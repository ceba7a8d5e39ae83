package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is an ordered text segment of a document with its embedding.
// ChunkIndex preserves extraction order within the document.
type DocumentChunk struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	DossierID  uuid.UUID `json:"dossier_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChunkMatch is a chunk returned by similarity search
type ChunkMatch struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	Content    string    `json:"content"`
	Similarity float64   `json:"similarity"`
}
