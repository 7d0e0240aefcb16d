package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent; there is no versioned migration history for a deployment this
// small.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admin_users (
			id         UUID PRIMARY KEY,
			username   VARCHAR(64) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id           UUID PRIMARY KEY,
			email        VARCHAR(255) NOT NULL UNIQUE,
			name         VARCHAR(128) NOT NULL,
			college_name VARCHAR(128) NOT NULL DEFAULT '',
			phone_number VARCHAR(32) NOT NULL DEFAULT '',
			password     VARCHAR(128) NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id          UUID PRIMARY KEY,
			name        VARCHAR(128) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			share_link  UUID NOT NULL UNIQUE,
			is_active   BOOLEAN NOT NULL DEFAULT true,
			is_paused   BOOLEAN NOT NULL DEFAULT false,
			created_by  UUID,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at  TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id                UUID PRIMARY KEY,
			room_id           UUID NOT NULL REFERENCES rooms(id),
			text              VARCHAR(200) NOT NULL,
			upvotes           INTEGER NOT NULL DEFAULT 0,
			moderation_status VARCHAR(16) NOT NULL DEFAULT 'pending',
			submitter_id      VARCHAR(16) NOT NULL,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_room_status
			ON questions (room_id, moderation_status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_updated_at
			ON questions (updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_expires_at
			ON rooms (expires_at) WHERE expires_at IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
