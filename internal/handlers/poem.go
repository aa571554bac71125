package handlers

import (
	"encoding/json"
	"net/http"

	"poetry-share-backend/internal/middleware"
	"poetry-share-backend/internal/models"
	"poetry-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PoemHandler handles poem and visitor-counter HTTP requests
type PoemHandler struct {
	poemService    *services.PoemService
	visitorService *services.VisitorService
	feedHub        *services.FeedHub
}

// NewPoemHandler creates a new poem handler
func NewPoemHandler(poemService *services.PoemService, visitorService *services.VisitorService, feedHub *services.FeedHub) *PoemHandler {
	return &PoemHandler{
		poemService:    poemService,
		visitorService: visitorService,
		feedHub:        feedHub,
	}
}

// ListPoems handles GET /api/v1/poems
func (h *PoemHandler) ListPoems(w http.ResponseWriter, r *http.Request) {
	poems, err := h.poemService.ListPublicPoems(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list poems")
		respondError(w, "Failed to list poems", http.StatusInternalServerError)
		return
	}

	// An empty feed is [], not null
	if poems == nil {
		poems = []*models.Poem{}
	}

	respondJSON(w, poems, http.StatusOK)
}

// CreatePoem handles POST /api/v1/poems. Authentication is optional:
// anonymous submissions get default attribution.
func (h *PoemHandler) CreatePoem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.CreatePoemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		respondError(w, "title and content are required", http.StatusBadRequest)
		return
	}

	poem, err := h.poemService.CreatePoem(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create poem")
		respondError(w, "Failed to create poem", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("poem_id", poem.ID).
		Str("username", poem.Username).
		Bool("is_public", poem.IsPublic).
		Msg("Poem created")

	if poem.IsPublic {
		h.feedHub.Broadcast(services.FeedEvent{Type: "poem_created", Poem: poem})
	}

	respondJSON(w, map[string]string{"id": poem.ID}, http.StatusOK)
}

// GetVisitorCount handles GET /api/v1/visitors
func (h *PoemHandler) GetVisitorCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.visitorService.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read visitor count")
		respondError(w, "Failed to read visitor count", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]int64{"count": count}, http.StatusOK)
}

// IncrementVisitorCount handles POST /api/v1/visitors
func (h *PoemHandler) IncrementVisitorCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.visitorService.Increment(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to increment visitor count")
		respondError(w, "Failed to increment visitor count", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]int64{"count": count}, http.StatusOK)
}
