// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/tokenpoll/cliparse"
)

// sqlitePragmas are applied to every pooled connection. Transactions take
// the write lock at BEGIN and wait up to busy_timeout for it.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	driver, dsn := dataSource(dbType, url)

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func dataSource(dbType, url string) (driver, dsn string) {
	if dbType == cliparse.DatabasePostgres {
		return "postgres", url
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return "sqlite", url + sep + sqlitePragmas
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint in
// either supported database.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
