package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"poetry-share-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository handles database operations for users and their
// profile extensions
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetUserByID retrieves a user by ID
func (r *ProfileRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetProfileByUserID retrieves the profile row for a user
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, bio, instagram, twitter, profile_picture, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Bio, &profile.Instagram,
		&profile.Twitter, &profile.ProfilePicture, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile patches the user's display name and upserts the profile
// row in a single transaction, so a failure in either write leaves both
// records untouched. The ON CONFLICT clause leans on the unique index on
// user_id: two concurrent first edits cannot create two profile rows.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID, name string, profile *models.UserProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, userID)
	if err != nil {
		return fmt.Errorf("failed to update user name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	upsert := `
		INSERT INTO user_profiles (id, user_id, bio, instagram, twitter, profile_picture, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			instagram = EXCLUDED.instagram,
			twitter = EXCLUDED.twitter,
			profile_picture = EXCLUDED.profile_picture,
			updated_at = EXCLUDED.updated_at
	`
	_, err = tx.Exec(ctx, upsert,
		uuid.New().String(), userID, profile.Bio, profile.Instagram,
		profile.Twitter, profile.ProfilePicture, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}
	return nil
}
