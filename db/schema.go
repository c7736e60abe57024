// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/tokenpoll/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	_, err := db.Exec(SchemaSQL(dbType))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SchemaSQL returns the schema for the given database type.
func SchemaSQL(dbType string) string {
	if dbType == cliparse.DatabasePostgres {
		return postgresSchema
	}
	return sqliteSchema
}

// Reset deletes every row, children first. Used by the seed command.
func Reset(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"vote", "voter", "token", "poll_option", "poll"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

const sqliteSchema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    created_at TIMESTAMP NOT NULL
);

-- Options
CREATE TABLE IF NOT EXISTS poll_option (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    label TEXT NOT NULL,
    ord INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id, ord);

-- Tokens
CREATE TABLE IF NOT EXISTS token (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    code TEXT NOT NULL UNIQUE,
    assigned_to_name TEXT,
    used_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_token_poll_id ON token(poll_id);

-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    option_id INTEGER NOT NULL REFERENCES poll_option(id),
    voter_id INTEGER NOT NULL UNIQUE REFERENCES voter(id),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_option_id ON vote(option_id);
`

const postgresSchema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Options
CREATE TABLE IF NOT EXISTS poll_option (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    label TEXT NOT NULL,
    ord INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id, ord);

-- Tokens
CREATE TABLE IF NOT EXISTS token (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    code TEXT NOT NULL UNIQUE,
    assigned_to_name TEXT,
    used_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_token_poll_id ON token(poll_id);

-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    option_id BIGINT NOT NULL REFERENCES poll_option(id),
    voter_id BIGINT NOT NULL UNIQUE REFERENCES voter(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_option_id ON vote(option_id);
`
