package database

import (
	"context"
	"fmt"
	"log/slog"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'staff' CHECK (role IN ('admin', 'staff')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGSERIAL PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		user_agent TEXT,
		ip_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_token_hash ON refresh_tokens (token_hash)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id              UUID PRIMARY KEY,
		staff_id        TEXT NOT NULL,
		name            TEXT NOT NULL,
		department      TEXT NOT NULL CHECK (department IN
			('stateboard', 'matric', 'aone', 'administration', 'management', 'other')),
		cabin_no        TEXT,
		year_of_joining INTEGER NOT NULL,
		phone_number    TEXT,
		email           TEXT,
		designation     TEXT,
		active          BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT staff_staff_id_key UNIQUE (staff_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_department ON staff (department)`,
	// staff_id is a business key without a foreign key: deleting staff leaves attendance in place
	`CREATE TABLE IF NOT EXISTS attendance (
		id         UUID PRIMARY KEY,
		staff_id   TEXT NOT NULL,
		date       DATE NOT NULL,
		status     TEXT NOT NULL CHECK (status IN ('present', 'absent', 'leave', 'halfday')),
		notes      TEXT NOT NULL DEFAULT '',
		marked_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT attendance_staff_day_key UNIQUE (staff_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date)`,
}

// RunMigrations creates the schema inside a single transaction.
func RunMigrations(ctx context.Context, db *DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	slog.Info("database schema up to date", "statements", len(schema))
	return nil
}
