package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"lexfacts-backend/models"
	"lexfacts-backend/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// emptyFileDetail is the terminal error reason stored on a document whose
// content could not be read as text
const emptyFileDetail = "Fichier vide ou illisible"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDossierNotFound  = errors.New("dossier not found")
	ErrEmptyDocument    = errors.New("document is empty or unreadable")
	ErrDownloadFailed   = errors.New("failed to download document content")
	ErrExtractionFailed = errors.New("failed to extract facts")
	ErrPersistFailed    = errors.New("failed to persist pipeline output")
)

// DocumentStore handles document reads and status transitions
type DocumentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	SetStatus(ctx context.Context, id uuid.UUID, statut models.DocumentStatus, detail *string) error
	SetTexteBrut(ctx context.Context, id uuid.UUID, texte string) error
}

// DossierStore resolves a document's owning dossier
type DossierStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dossier, error)
}

// FaitStore persists extracted facts
type FaitStore interface {
	InsertBatch(ctx context.Context, faits []*models.Fait) error
}

// ChunkStore persists embedded chunks
type ChunkStore interface {
	InsertBatch(ctx context.Context, chunks []*models.DocumentChunk) error
}

// DocumentService runs the document-to-knowledge pipeline:
// text extraction, fact extraction, chunking and embedding
type DocumentService struct {
	documents DocumentStore
	dossiers  DossierStore
	faits     FaitStore
	chunks    ChunkStore
	storage   storage.Storage
	extractor *TextExtractor
	facts     *FactExtractor
	embedder  Embedder
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocWithDocumentStore sets the document store
func DocWithDocumentStore(store DocumentStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.documents = store
	}
}

// DocWithDossierStore sets the dossier store
func DocWithDossierStore(store DossierStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.dossiers = store
	}
}

// DocWithFaitStore sets the fact store
func DocWithFaitStore(store FaitStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.faits = store
	}
}

// DocWithChunkStore sets the chunk store
func DocWithChunkStore(store ChunkStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.chunks = store
	}
}

// DocWithStorage sets the file storage backend
func DocWithStorage(fileStorage storage.Storage) DocumentServiceOption {
	return func(s *DocumentService) {
		s.storage = fileStorage
	}
}

// DocWithTextExtractor sets the PDF text extractor
func DocWithTextExtractor(extractor *TextExtractor) DocumentServiceOption {
	return func(s *DocumentService) {
		s.extractor = extractor
	}
}

// DocWithFactExtractor sets the fact extractor
func DocWithFactExtractor(facts *FactExtractor) DocumentServiceOption {
	return func(s *DocumentService) {
		s.facts = facts
	}
}

// DocWithEmbedder sets the embedder
func DocWithEmbedder(embedder Embedder) DocumentServiceOption {
	return func(s *DocumentService) {
		s.embedder = embedder
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessResult summarizes a completed pipeline run
type ProcessResult struct {
	FactsExtracted int
	ChunksIndexed  int
}

// ProcessDocument runs the full pipeline for one document. On any failure
// past the initial lookup, the document's status is moved to Erreur
// (best effort) before the error is returned. Re-invoking on an already
// processed document duplicates facts and chunks; no deduplication is
// performed.
func (s *DocumentService) ProcessDocument(ctx context.Context, documentID uuid.UUID) (*ProcessResult, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: document lookup: %v", ErrPersistFailed, err)
	}

	if err := s.documents.SetStatus(ctx, documentID, models.StatusEnCours, nil); err != nil {
		return nil, fmt.Errorf("%w: status update: %v", ErrPersistFailed, err)
	}

	dossier, err := s.dossiers.GetByID(ctx, doc.DossierID)
	if err != nil {
		return nil, s.fail(ctx, documentID, ErrDossierNotFound, err)
	}

	content, err := s.download(ctx, doc.FichierURL)
	if err != nil {
		return nil, s.fail(ctx, documentID, ErrDownloadFailed, err)
	}

	texte := s.extractor.Extract(ctx, content)
	if strings.TrimSpace(texte) == "" {
		detail := emptyFileDetail
		if err := s.documents.SetStatus(ctx, documentID, models.StatusErreur, &detail); err != nil {
			log.Printf("Warning: failed to mark document %s as Erreur: %v", documentID, err)
		}
		return nil, ErrEmptyDocument
	}

	if err := s.documents.SetTexteBrut(ctx, documentID, texte); err != nil {
		return nil, s.fail(ctx, documentID, ErrPersistFailed, err)
	}

	faits, err := s.facts.Extract(ctx, dossier.Type, texte, doc.DossierID, documentID)
	if err != nil {
		return nil, s.fail(ctx, documentID, ErrExtractionFailed, err)
	}
	if len(faits) > 0 {
		if err := s.faits.InsertBatch(ctx, faits); err != nil {
			return nil, s.fail(ctx, documentID, ErrPersistFailed, err)
		}
	}

	chunksIndexed, err := s.indexChunks(ctx, doc, texte)
	if err != nil {
		return nil, s.fail(ctx, documentID, ErrPersistFailed, err)
	}

	if err := s.documents.SetStatus(ctx, documentID, models.StatusTraite, nil); err != nil {
		return nil, fmt.Errorf("%w: final status update: %v", ErrPersistFailed, err)
	}

	return &ProcessResult{
		FactsExtracted: len(faits),
		ChunksIndexed:  chunksIndexed,
	}, nil
}

// indexChunks splits the text, embeds the chunks and persists them.
// Individual embedding failures were already skipped upstream; a batch
// that embedded nothing is logged but does not fail the pipeline.
func (s *DocumentService) indexChunks(ctx context.Context, doc *models.Document, texte string) (int, error) {
	segments := SplitText(texte)
	if len(segments) == 0 {
		return 0, nil
	}

	embeddings := EmbedChunks(ctx, s.embedder, segments)
	if len(embeddings) == 0 {
		log.Printf("Warning: no embeddings produced for document %s (%d segments)", doc.ID, len(segments))
		return 0, nil
	}

	rows := make([]*models.DocumentChunk, len(embeddings))
	for i, emb := range embeddings {
		rows[i] = &models.DocumentChunk{
			DocumentID: doc.ID,
			DossierID:  doc.DossierID,
			ChunkIndex: emb.Index,
			Content:    emb.Content,
			Embedding:  emb.Vector,
		}
	}

	if err := s.chunks.InsertBatch(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// download fetches the document's binary content from storage
func (s *DocumentService) download(ctx context.Context, fichierURL string) ([]byte, error) {
	body, err := s.storage.Download(ctx, storagePathFromURL(fichierURL))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// storagePathFromURL resolves a stored fichier_url to a storage path. URLs
// keep the "<dossier>/<file>" layout in their last two segments; bare
// storage paths pass through unchanged.
func storagePathFromURL(fichierURL string) string {
	parts := strings.Split(strings.TrimSuffix(fichierURL, "/"), "/")
	if len(parts) < 2 {
		return fichierURL
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

// fail rolls the document back to Erreur (best effort) and wraps the error
func (s *DocumentService) fail(ctx context.Context, documentID uuid.UUID, sentinel, cause error) error {
	detail := cause.Error()
	if err := s.documents.SetStatus(ctx, documentID, models.StatusErreur, &detail); err != nil {
		log.Printf("Warning: failed to mark document %s as Erreur: %v", documentID, err)
	}
	return fmt.Errorf("%w: %v", sentinel, cause)
}
