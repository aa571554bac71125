package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"poetry-share-backend/internal/middleware"
	"poetry-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UploadHandler handles avatar upload URL requests
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// GenerateUploadURL handles POST /api/v1/uploads. Sits behind RequireAuth:
// avatars are profile-scoped.
func (h *UploadHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	// An empty body is fine; the content type just defaults
	var req services.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.uploadService.GetUploadURL(ctx, userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to generate upload URL")
		respondError(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("storage_key", response.StorageKey).
		Msg("Upload URL generated")

	respondJSON(w, response, http.StatusOK)
}
