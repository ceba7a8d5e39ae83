package repository

import (
	"context"
	"fmt"
	"strings"

	"lexfacts-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const embeddingDimensions = 768

// ChunkRepository handles database operations for document chunks
type ChunkRepository struct {
	db *pgxpool.Pool
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float32) string {
	if len(embedding) == 0 {
		return "[]"
	}
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// InsertBatch inserts document chunks with their embeddings in a single
// transaction
func (r *ChunkRepository) InsertBatch(ctx context.Context, chunks []*models.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO document_chunks (
			document_id, dossier_id, chunk_index, content, embedding
		) VALUES ($1, $2, $3, $4, $5::vector)
		RETURNING id, created_at`

	for _, chunk := range chunks {
		if len(chunk.Embedding) != embeddingDimensions {
			return fmt.Errorf("chunk %d: embedding must be %d dimensions, got %d",
				chunk.ChunkIndex, embeddingDimensions, len(chunk.Embedding))
		}
		err := tx.QueryRow(ctx, query,
			chunk.DocumentID,
			chunk.DossierID,
			chunk.ChunkIndex,
			chunk.Content,
			formatVector(chunk.Embedding),
		).Scan(&chunk.ID, &chunk.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", chunk.ChunkIndex, err)
		}
	}

	return tx.Commit(ctx)
}

// Match performs a cosine similarity search over a dossier's chunks,
// returning at most limit chunks whose similarity exceeds threshold,
// ordered by descending similarity
func (r *ChunkRepository) Match(
	ctx context.Context,
	embedding []float32,
	dossierID uuid.UUID,
	threshold float64,
	limit int,
) ([]models.ChunkMatch, error) {
	if len(embedding) != embeddingDimensions {
		return nil, fmt.Errorf("embedding must be %d dimensions, got %d", embeddingDimensions, len(embedding))
	}

	query := `
		SELECT
			id,
			document_id,
			content,
			1 - (embedding <=> $1::vector) AS similarity
		FROM document_chunks
		WHERE
			dossier_id = $2
			AND 1 - (embedding <=> $1::vector) > $3
		ORDER BY
			embedding <=> $1::vector
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, formatVector(embedding), dossierID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query document chunks: %w", err)
	}
	defer rows.Close()

	var matches []models.ChunkMatch
	for rows.Next() {
		var m models.ChunkMatch
		if err := rows.Scan(&m.ID, &m.DocumentID, &m.Content, &m.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan chunk match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chunk matches: %w", err)
	}

	return matches, nil
}

// CountByDocument returns the number of stored chunks for a document
func (r *ChunkRepository) CountByDocument(ctx context.Context, documentID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM document_chunks WHERE document_id = $1`, documentID).Scan(&count)
	return count, err
}
