package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexfacts-backend/models"
	"lexfacts-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, mode service.EmbeddingMode) ([]float32, error) {
	return f.vector, f.err
}

type fakeMatcher struct {
	matches []models.ChunkMatch
	err     error
}

func (f *fakeMatcher) Match(ctx context.Context, embedding []float32, dossierID uuid.UUID, threshold float64, limit int) ([]models.ChunkMatch, error) {
	return f.matches, f.err
}

type fakeGenerator struct {
	answer string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userText string) (string, error) {
	return f.answer, f.err
}

func newChatRouter(chatService *service.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/chat", NewChatHandler(chatService).Chat)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatMissingFields(t *testing.T) {
	r := newChatRouter(service.NewChatService())

	for _, body := range []string{
		`{}`,
		`{"question": "Quand ?"}`,
		`{"dossier_id": "` + uuid.New().String() + `"}`,
	} {
		w := postJSON(t, r, "/api/chat", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestChatInvalidDossierID(t *testing.T) {
	r := newChatRouter(service.NewChatService())

	w := postJSON(t, r, "/api/chat", `{"question": "Quand ?", "dossier_id": "pas-un-uuid"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestChatSuccess(t *testing.T) {
	chatService := service.NewChatService(
		service.ChatWithEmbedder(&fakeEmbedder{vector: []float32{0.1}}),
		service.ChatWithChunkMatcher(&fakeMatcher{matches: []models.ChunkMatch{{Content: "extrait"}}}),
		service.ChatWithGenerator(&fakeGenerator{answer: "Le 12 mai 2023."}),
	)
	r := newChatRouter(chatService)

	w := postJSON(t, r, "/api/chat", `{"question": "Quand l'offre a-t-elle été rejetée ?", "dossier_id": "`+uuid.New().String()+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Answer != "Le 12 mai 2023." {
		t.Errorf("unexpected answer %q", resp.Answer)
	}
}

func TestChatServiceError(t *testing.T) {
	chatService := service.NewChatService(
		service.ChatWithEmbedder(&fakeEmbedder{err: errors.New("quota exceeded")}),
		service.ChatWithChunkMatcher(&fakeMatcher{}),
		service.ChatWithGenerator(&fakeGenerator{}),
	)
	r := newChatRouter(chatService)

	w := postJSON(t, r, "/api/chat", `{"question": "Quand ?", "dossier_id": "`+uuid.New().String()+`"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
