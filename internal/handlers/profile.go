package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"poetry-share-backend/internal/middleware"
	"poetry-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile handles GET /api/v1/profile. The operation is nullable by
// contract: an anonymous caller, or one whose user record the auth
// provider has lost, gets a JSON null rather than an error.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		respondJSON(w, nil, http.StatusOK)
		return
	}

	view, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		respondError(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	if view == nil {
		respondJSON(w, nil, http.StatusOK)
		return
	}

	respondJSON(w, view, http.StatusOK)
}

// UpdateProfile handles PUT /api/v1/profile. Sits behind RequireAuth.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		respondError(w, "username is required", http.StatusBadRequest)
		return
	}

	if err := h.profileService.UpdateProfile(ctx, userID, req); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")

		statusCode := http.StatusInternalServerError
		message := "Failed to update profile"
		if errors.Is(err, services.ErrUserNotFound) {
			statusCode = http.StatusNotFound
			message = "User not found"
		}

		respondError(w, message, statusCode)
		return
	}

	log.Info().Str("user_id", userID).Msg("Profile updated")

	respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
