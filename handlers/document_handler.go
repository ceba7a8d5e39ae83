package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lexfacts-backend/models"
	"lexfacts-backend/repository"
	"lexfacts-backend/service"
	"lexfacts-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize caps uploaded documents at 10MB
const maxUploadSize = 10 * 1024 * 1024

// DocumentHandler handles HTTP requests for documents
type DocumentHandler struct {
	documentService *service.DocumentService
	documentRepo    *repository.DocumentRepository
	dossierRepo     *repository.DossierRepository
	storage         storage.Storage
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documentService *service.DocumentService,
	documentRepo *repository.DocumentRepository,
	dossierRepo *repository.DossierRepository,
	fileStorage storage.Storage,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		documentRepo:    documentRepo,
		dossierRepo:     dossierRepo,
		storage:         fileStorage,
	}
}

// ProcessDocumentRequest represents the request body for processing a document
type ProcessDocumentRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
}

// ProcessDocument handles POST /api/process-document
func (h *DocumentHandler) ProcessDocument(c *gin.Context) {
	var req ProcessDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"detail": "document_id is required",
		})
		return
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"detail": "Invalid document_id format",
		})
		return
	}

	result, err := h.documentService.ProcessDocument(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"status": "error",
				"detail": "Document non trouvé",
			})
		case errors.Is(err, service.ErrEmptyDocument):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": "error",
				"detail": "Fichier vide ou illisible",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"detail": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"facts_extracted": result.FactsExtracted,
	})
}

// UploadDocument handles POST /api/documents/upload
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	dossierIDStr := c.PostForm("dossier_id")
	if dossierIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_DOSSIER_ID",
				"message": "dossier_id is required",
			},
		})
		return
	}

	dossierID, err := uuid.Parse(dossierIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DOSSIER_ID",
				"message": "Invalid dossier_id format",
			},
		})
		return
	}

	if _, err := h.dossierRepo.GetByID(c.Request.Context(), dossierID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOSSIER_NOT_FOUND",
				"message": "Dossier not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", int64(maxUploadSize)),
			},
		})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType != "application/pdf" && !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Only PDF files are accepted",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	fileID := uuid.New()

	storagePath, err := h.storage.Upload(c.Request.Context(), dossierID, fileID, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": fmt.Sprintf("Failed to upload file: %v", err),
			},
		})
		return
	}

	doc := &models.Document{
		ID:         fileID,
		DossierID:  dossierID,
		Nom:        fileHeader.Filename,
		FichierURL: storagePath,
	}

	if err := h.documentRepo.Create(c.Request.Context(), doc); err != nil {
		// Try to clean up the uploaded file
		h.storage.Delete(c.Request.Context(), storagePath)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to save document record: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":          doc.ID,
			"dossier_id":  doc.DossierID,
			"nom":         doc.Nom,
			"fichier_url": doc.FichierURL,
			"statut":      doc.Statut,
			"created_at":  doc.CreatedAt,
		},
	})
}

// ListByDossier handles GET /api/dossiers/:id/documents
func (h *DocumentHandler) ListByDossier(c *gin.Context) {
	dossierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid dossier ID format",
			},
		})
		return
	}

	documents, err := h.documentRepo.ListByDossier(c.Request.Context(), dossierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    documents,
	})
}
