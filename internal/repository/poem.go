package repository

import (
	"context"
	"fmt"

	"poetry-share-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoemRepository handles database operations for poems
type PoemRepository struct {
	db *pgxpool.Pool
}

// NewPoemRepository creates a new poem repository
func NewPoemRepository(db *pgxpool.Pool) *PoemRepository {
	return &PoemRepository{db: db}
}

// Create inserts a new poem. Poems have no update or delete path.
func (r *PoemRepository) Create(ctx context.Context, poem *models.Poem) error {
	query := `
		INSERT INTO poems (id, title, content, author_id, author_name, username, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		poem.ID, poem.Title, poem.Content, poem.AuthorID,
		poem.AuthorName, poem.Username, poem.IsPublic, poem.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create poem: %w", err)
	}
	return nil
}

// ListPublic retrieves all public poems, newest first. The feed contract is
// a full materialization: no limit or offset.
func (r *PoemRepository) ListPublic(ctx context.Context) ([]*models.Poem, error) {
	query := `
		SELECT id, title, content, author_id, author_name, username, is_public, created_at
		FROM poems
		WHERE is_public
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list poems: %w", err)
	}
	defer rows.Close()

	var poems []*models.Poem
	for rows.Next() {
		var poem models.Poem
		err := rows.Scan(
			&poem.ID, &poem.Title, &poem.Content, &poem.AuthorID,
			&poem.AuthorName, &poem.Username, &poem.IsPublic, &poem.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poem: %w", err)
		}
		poems = append(poems, &poem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poems: %w", err)
	}

	return poems, nil
}
