package handlers

import (
	"net/http"

	"lexfacts-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles HTTP requests for dossier chat
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents the request body for asking a question
type ChatRequest struct {
	Question  string `json:"question" binding:"required"`
	DossierID string `json:"dossier_id" binding:"required"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"detail": "question and dossier_id are required",
		})
		return
	}

	dossierID, err := uuid.Parse(req.DossierID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"detail": "Invalid dossier_id format",
		})
		return
	}

	result, err := h.chatService.Answer(c.Request.Context(), service.AnswerRequest{
		Question:  req.Question,
		DossierID: dossierID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer": result.Answer,
	})
}
