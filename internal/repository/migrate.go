package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// RunMigrations applies the schema file to the database. Statements are
// written to be idempotent (CREATE TABLE IF NOT EXISTS), so running on
// every startup is safe.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, path string) error {
	migrationSQL, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	if _, err := db.Exec(ctx, string(migrationSQL)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info().Str("file", path).Msg("Migrations applied")
	return nil
}
