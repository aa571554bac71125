package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VisitorRepository handles the singleton visitor counter
type VisitorRepository struct {
	db *pgxpool.Pool
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(db *pgxpool.Pool) *VisitorRepository {
	return &VisitorRepository{db: db}
}

// Increment bumps the counter and returns the new value. Insert-or-update
// happens in one statement, so concurrent callers cannot lose increments
// or create a second row.
func (r *VisitorRepository) Increment(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO visitor_counter (id, count)
		VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET count = visitor_counter.count + 1
		RETURNING count
	`
	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to increment visitor count: %w", err)
	}
	return count, nil
}

// Count returns the current counter value, or 0 when the row does not
// exist yet. Reading never creates the row.
func (r *VisitorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count FROM visitor_counter WHERE id = 1`).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get visitor count: %w", err)
	}
	return count, nil
}
