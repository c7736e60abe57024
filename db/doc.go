// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite (modernc.org/sqlite, the default) treats the URL as a file path and
adds pragmas for foreign keys, WAL, a busy timeout and immediate
transactions. Postgres goes through github.com/lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: title, description, open/closed status
  - poll_option: labels with a stable ord
  - token: single-use codes (UNIQUE), optional assignee, used_at
  - voter: name captured when a token is redeemed
  - vote: one per voter, pointing at an option

# Relationships

	poll 1──* poll_option
	poll 1──* token
	poll 1──* voter 1──1 vote *──1 poll_option

# Errors

IsUniqueViolation recognizes UNIQUE constraint failures from both drivers.
*/
package db
