package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_subscriptions",
		SQL: `CREATE TABLE IF NOT EXISTS subscriptions (
  id           TEXT        PRIMARY KEY,
  session_key  TEXT        NOT NULL UNIQUE,
  checkout_id  TEXT        NOT NULL,
  status       TEXT        NOT NULL CHECK (status IN ('active', 'canceled')),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_subscriptions_checkout_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subscriptions_checkout_id ON subscriptions (checkout_id);`,
	},
	{
		Name: "create_index_subscriptions_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subscriptions_status ON subscriptions (status);`,
	},
}

// EnsureMigrated checks if the 'subscriptions' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public.subscriptions') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Str("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)).
			Dur("duration_ms", time.Since(start)).
			Send()
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Dur("duration_ms", time.Since(start)).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Str("error_message", err.Error()).
				Dur("duration_ms", time.Since(start)).
				Dur("step_duration_ms", time.Since(stepStart)).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Dur("step_duration_ms", time.Since(stepStart)).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Dur("duration_ms", time.Since(start)).
		Send()

	return nil
}
