package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poetry-share-backend/internal/middleware"
	"poetry-share-backend/internal/models"
	"poetry-share-backend/internal/repository"
	"poetry-share-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authed(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestGetProfileHandler_Anonymous(t *testing.T) {
	h := NewProfileHandler(services.NewProfileService(&stubProfileStore{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestGetProfileHandler_MissingUserRow(t *testing.T) {
	store := &stubProfileStore{
		getUserFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
		},
	}
	h := NewProfileHandler(services.NewProfileService(store))

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil), "gone")
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestGetProfileHandler_Merged(t *testing.T) {
	store := &stubProfileStore{
		getUserFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Name: strPtr("Alice")}, nil
		},
		getProfileFn: func(ctx context.Context, userID string) (*models.UserProfile, error) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		},
	}
	h := NewProfileHandler(services.NewProfileService(store))

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil), "user-1")
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view models.ProfileView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "user-1", view.ID)
	assert.Equal(t, "", view.Bio)
	assert.Nil(t, view.ProfilePicture)
}

func TestUpdateProfileHandler_Success(t *testing.T) {
	var gotName string
	var gotProfile *models.UserProfile
	store := &stubProfileStore{
		updateProfileFn: func(ctx context.Context, userID, name string, profile *models.UserProfile) error {
			gotName = name
			gotProfile = profile
			return nil
		},
	}
	h := NewProfileHandler(services.NewProfileService(store))

	body := `{"username":"Alice","bio":"hello","instagram":"alice_ig"}`
	req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "Alice", gotName)
	require.NotNil(t, gotProfile)
	assert.Equal(t, "hello", gotProfile.Bio)
	assert.Equal(t, "alice_ig", gotProfile.Instagram)
	assert.Equal(t, "", gotProfile.Twitter)
}

func TestUpdateProfileHandler_MissingUsername(t *testing.T) {
	store := &stubProfileStore{
		updateProfileFn: func(ctx context.Context, userID, name string, profile *models.UserProfile) error {
			t.Fatal("store must not be reached on validation failure")
			return nil
		},
	}
	h := NewProfileHandler(services.NewProfileService(store))

	req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"bio":"x"}`)), "user-1")
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfileHandler_UserNotFound(t *testing.T) {
	store := &stubProfileStore{
		updateProfileFn: func(ctx context.Context, userID, name string, profile *models.UserProfile) error {
			return fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
		},
	}
	h := NewProfileHandler(services.NewProfileService(store))

	req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(`{"username":"Alice"}`)), "gone")
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
