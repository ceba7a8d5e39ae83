package repository

import (
	"context"

	"lexfacts-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (
			dossier_id, nom, fichier_url, statut
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	if doc.Statut == "" {
		doc.Statut = models.StatusATraiter
	}

	return r.db.QueryRow(
		ctx, query,
		doc.DossierID,
		doc.Nom,
		doc.FichierURL,
		doc.Statut,
	).Scan(&doc.ID, &doc.CreatedAt)
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, dossier_id, nom, fichier_url, statut, erreur_detail, texte_brut, created_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.DossierID,
		&doc.Nom,
		&doc.FichierURL,
		&doc.Statut,
		&doc.ErreurDetail,
		&doc.TexteBrut,
		&doc.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// SetStatus updates a document's status. detail carries the error reason
// for Erreur and clears it otherwise; last write wins.
func (r *DocumentRepository) SetStatus(ctx context.Context, id uuid.UUID, statut models.DocumentStatus, detail *string) error {
	query := `UPDATE documents SET statut = $2, erreur_detail = $3 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, statut, detail)
	return err
}

// SetTexteBrut persists the extracted raw text of a document
func (r *DocumentRepository) SetTexteBrut(ctx context.Context, id uuid.UUID, texte string) error {
	query := `UPDATE documents SET texte_brut = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, texte)
	return err
}

// ListByDossier retrieves all documents of a dossier, newest first
func (r *DocumentRepository) ListByDossier(ctx context.Context, dossierID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, dossier_id, nom, fichier_url, statut, erreur_detail, texte_brut, created_at
		FROM documents
		WHERE dossier_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, dossierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.DossierID,
			&doc.Nom,
			&doc.FichierURL,
			&doc.Statut,
			&doc.ErreurDetail,
			&doc.TexteBrut,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}
