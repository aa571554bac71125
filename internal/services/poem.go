package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"poetry-share-backend/internal/models"
	"poetry-share-backend/internal/repository"

	"github.com/google/uuid"
)

const anonymousName = "Anonymous"

// PoemStore is the persistence surface the poem service needs
type PoemStore interface {
	Create(ctx context.Context, poem *models.Poem) error
	ListPublic(ctx context.Context) ([]*models.Poem, error)
}

// UserStore resolves user records for author attribution
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PoemService handles poem-related business logic
type PoemService struct {
	poemRepo PoemStore
	userRepo UserStore
}

// NewPoemService creates a new poem service
func NewPoemService(poemRepo PoemStore, userRepo UserStore) *PoemService {
	return &PoemService{
		poemRepo: poemRepo,
		userRepo: userRepo,
	}
}

// CreatePoemRequest represents a request to publish a poem
type CreatePoemRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required,max=20000"`
	IsPublic bool   `json:"is_public"`
	Username string `json:"username" validate:"max=64"`
}

// CreatePoem publishes a poem. userID may be empty: anonymous submissions
// are allowed and get default attribution. For authenticated callers the
// author name and username are snapshotted from the user record at
// creation time and never resynced with later name changes.
func (s *PoemService) CreatePoem(ctx context.Context, userID string, req CreatePoemRequest) (*models.Poem, error) {
	poem := &models.Poem{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Content:    req.Content,
		IsPublic:   req.IsPublic,
		AuthorName: anonymousName,
		Username:   req.Username,
		CreatedAt:  time.Now(),
	}
	if poem.Username == "" {
		poem.Username = anonymousName
	}

	if userID != "" {
		poem.AuthorID = &userID

		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve author: %w", err)
		}
		// A missing user row keeps the Anonymous defaults but still
		// records the author id.
		if user != nil {
			poem.AuthorName = displayName(user)
			if req.Username == "" {
				poem.Username = derivedUsername(user)
			}
		}
	}

	if err := s.poemRepo.Create(ctx, poem); err != nil {
		return nil, fmt.Errorf("failed to create poem: %w", err)
	}

	return poem, nil
}

// ListPublicPoems returns every public poem, newest first.
func (s *PoemService) ListPublicPoems(ctx context.Context) ([]*models.Poem, error) {
	poems, err := s.poemRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public poems: %w", err)
	}
	return poems, nil
}

// displayName picks name, then email, then Anonymous.
func displayName(user *models.User) string {
	if user.Name != nil && *user.Name != "" {
		return *user.Name
	}
	if user.Email != nil && *user.Email != "" {
		return *user.Email
	}
	return anonymousName
}

// derivedUsername picks name, then the local part of the email, then
// Anonymous.
func derivedUsername(user *models.User) string {
	if user.Name != nil && *user.Name != "" {
		return *user.Name
	}
	if user.Email != nil {
		if local := strings.SplitN(*user.Email, "@", 2)[0]; local != "" {
			return local
		}
	}
	return anonymousName
}
