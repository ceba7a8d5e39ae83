package handlers

import (
	"net/http"

	"lexfacts-backend/models"
	"lexfacts-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DossierHandler handles HTTP requests for dossiers
type DossierHandler struct {
	dossierRepo *repository.DossierRepository
	faitRepo    *repository.FaitRepository
}

// NewDossierHandler creates a new dossier handler
func NewDossierHandler(dossierRepo *repository.DossierRepository, faitRepo *repository.FaitRepository) *DossierHandler {
	return &DossierHandler{
		dossierRepo: dossierRepo,
		faitRepo:    faitRepo,
	}
}

// CreateDossierRequest represents the request body for creating a dossier
type CreateDossierRequest struct {
	Nom  string `json:"nom" binding:"required"`
	Type string `json:"type"`
}

// CreateDossier handles POST /api/dossiers
func (h *DossierHandler) CreateDossier(c *gin.Context) {
	var req CreateDossierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	dossier := &models.Dossier{
		Nom:  req.Nom,
		Type: models.DossierCategory(req.Type),
	}

	if err := h.dossierRepo.Create(c.Request.Context(), dossier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dossier,
	})
}

// ListDossiers handles GET /api/dossiers
func (h *DossierHandler) ListDossiers(c *gin.Context) {
	dossiers, err := h.dossierRepo.List(c.Request.Context())
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
		"data":    dossiers,
	})
}

// ListFaits handles GET /api/dossiers/:id/faits
func (h *DossierHandler) ListFaits(c *gin.Context) {
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

	faits, err := h.faitRepo.ListByDossier(c.Request.Context(), dossierID)
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
		"data":    faits,
	})
}
