package handlers

import (
	"context"

	"poetry-share-backend/internal/models"
)

// Function-backed store stubs so handler tests can drive the real services.

type stubPoemStore struct {
	createFn     func(ctx context.Context, poem *models.Poem) error
	listPublicFn func(ctx context.Context) ([]*models.Poem, error)
}

func (s *stubPoemStore) Create(ctx context.Context, poem *models.Poem) error {
	return s.createFn(ctx, poem)
}

func (s *stubPoemStore) ListPublic(ctx context.Context) ([]*models.Poem, error) {
	return s.listPublicFn(ctx)
}

type stubUserStore struct {
	getUserFn func(ctx context.Context, id string) (*models.User, error)
}

func (s *stubUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUserFn(ctx, id)
}

type stubProfileStore struct {
	getUserFn       func(ctx context.Context, id string) (*models.User, error)
	getProfileFn    func(ctx context.Context, userID string) (*models.UserProfile, error)
	updateProfileFn func(ctx context.Context, userID, name string, profile *models.UserProfile) error
}

func (s *stubProfileStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubProfileStore) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.getProfileFn(ctx, userID)
}

func (s *stubProfileStore) UpdateProfile(ctx context.Context, userID, name string, profile *models.UserProfile) error {
	return s.updateProfileFn(ctx, userID, name, profile)
}

type stubVisitorStore struct {
	incrementFn func(ctx context.Context) (int64, error)
	countFn     func(ctx context.Context) (int64, error)
}

func (s *stubVisitorStore) Increment(ctx context.Context) (int64, error) {
	return s.incrementFn(ctx)
}

func (s *stubVisitorStore) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func strPtr(s string) *string { return &s }
