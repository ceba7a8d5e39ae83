package repository

import (
	"context"

	"lexfacts-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DossierRepository handles database operations for dossiers
type DossierRepository struct {
	db *pgxpool.Pool
}

// NewDossierRepository creates a new dossier repository
func NewDossierRepository(db *pgxpool.Pool) *DossierRepository {
	return &DossierRepository{db: db}
}

// Create creates a new dossier
func (r *DossierRepository) Create(ctx context.Context, dossier *models.Dossier) error {
	query := `
		INSERT INTO dossiers (nom, type)
		VALUES ($1, $2)
		RETURNING id, created_at`

	if dossier.Type == "" {
		dossier.Type = models.CategoryGeneral
	}

	return r.db.QueryRow(ctx, query, dossier.Nom, dossier.Type).
		Scan(&dossier.ID, &dossier.CreatedAt)
}

// GetByID retrieves a dossier by ID
func (r *DossierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dossier, error) {
	dossier := &models.Dossier{}
	query := `SELECT id, nom, type, created_at FROM dossiers WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&dossier.ID,
		&dossier.Nom,
		&dossier.Type,
		&dossier.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return dossier, nil
}

// List retrieves all dossiers, newest first
func (r *DossierRepository) List(ctx context.Context) ([]*models.Dossier, error) {
	query := `SELECT id, nom, type, created_at FROM dossiers ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dossiers []*models.Dossier
	for rows.Next() {
		dossier := &models.Dossier{}
		err := rows.Scan(&dossier.ID, &dossier.Nom, &dossier.Type, &dossier.CreatedAt)
		if err != nil {
			return nil, err
		}
		dossiers = append(dossiers, dossier)
	}

	return dossiers, rows.Err()
}
