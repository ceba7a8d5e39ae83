package repository

import (
	"context"
	"fmt"

	"lexfacts-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FaitRepository handles database operations for extracted facts
type FaitRepository struct {
	db *pgxpool.Pool
}

// NewFaitRepository creates a new fait repository
func NewFaitRepository(db *pgxpool.Pool) *FaitRepository {
	return &FaitRepository{db: db}
}

// InsertBatch inserts extracted facts in a single transaction
func (r *FaitRepository) InsertBatch(ctx context.Context, faits []*models.Fait) error {
	if len(faits) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO faits (
			dossier_id, document_id, date_fait, description, acteurs, type_fait
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	for i, fait := range faits {
		err := tx.QueryRow(ctx, query,
			fait.DossierID,
			fait.DocumentID,
			fait.DateFait,
			fait.Description,
			fait.Acteurs,
			fait.TypeFait,
		).Scan(&fait.ID, &fait.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert fait %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

// ListByDossier retrieves the facts of a dossier ordered chronologically,
// undated facts last (the timeline ordering)
func (r *FaitRepository) ListByDossier(ctx context.Context, dossierID uuid.UUID) ([]*models.Fait, error) {
	query := `
		SELECT id, dossier_id, document_id,
			to_char(date_fait, 'YYYY-MM-DD'),
			description, acteurs, type_fait, created_at
		FROM faits
		WHERE dossier_id = $1
		ORDER BY date_fait ASC NULLS LAST, created_at ASC`

	rows, err := r.db.Query(ctx, query, dossierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faits []*models.Fait
	for rows.Next() {
		fait := &models.Fait{}
		err := rows.Scan(
			&fait.ID,
			&fait.DossierID,
			&fait.DocumentID,
			&fait.DateFait,
			&fait.Description,
			&fait.Acteurs,
			&fait.TypeFait,
			&fait.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		faits = append(faits, fait)
	}

	return faits, rows.Err()
}
