package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order on every start; each statement must be
// safe to re-run.
var Migrations = []Migration{
	{
		Name: "create_cv_exports",
		SQL: `CREATE TABLE IF NOT EXISTS cv_exports (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			style TEXT NOT NULL DEFAULT 'professional',
			file_name TEXT NOT NULL DEFAULT '',
			file_path TEXT NOT NULL DEFAULT '',
			file_size INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			metadata JSONB DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "index_cv_exports_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS cv_exports_created_at_idx ON cv_exports (created_at DESC)`,
	},
}

// RunMigrations executes all migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return nil
	}
	slog.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
