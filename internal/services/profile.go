package services

import (
	"context"
	"errors"
	"fmt"

	"poetry-share-backend/internal/models"
	"poetry-share-backend/internal/repository"
)

// ProfileStore is the persistence surface the profile service needs
type ProfileStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID, name string, profile *models.UserProfile) error
}

// ErrUserNotFound is returned when a profile mutation targets a user the
// auth provider has no record of.
var ErrUserNotFound = errors.New("user not found")

// ProfileService handles profile-related business logic
type ProfileService struct {
	profileRepo ProfileStore
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo ProfileStore) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// UpdateProfileRequest represents a profile update. Omitted or empty
// bio/instagram/twitter clear the stored value; profile_picture is carried
// through exactly as supplied (null clears it).
type UpdateProfileRequest struct {
	Username       string  `json:"username" validate:"required,max=64"`
	Bio            string  `json:"bio" validate:"max=1000"`
	Instagram      string  `json:"instagram" validate:"max=100"`
	Twitter        string  `json:"twitter" validate:"max=100"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,max=500"`
}

// GetProfile returns the merged User + UserProfile view. A user with no
// profile row gets empty-string/null defaults; a missing user row returns
// nil without error, matching the nullable contract the client expects.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileView, error) {
	user, err := s.profileRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	view := &models.ProfileView{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	view.Bio = profile.Bio
	view.Instagram = profile.Instagram
	view.Twitter = profile.Twitter
	view.ProfilePicture = profile.ProfilePicture
	return view, nil
}

// UpdateProfile patches the user's display name and upserts the profile
// row. Both writes happen in one transaction at the repository, so there
// is no partial-success state to compensate for.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) error {
	profile := &models.UserProfile{
		UserID:         userID,
		Bio:            req.Bio,
		Instagram:      req.Instagram,
		Twitter:        req.Twitter,
		ProfilePicture: req.ProfilePicture,
	}

	err := s.profileRepo.UpdateProfile(ctx, userID, req.Username, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
