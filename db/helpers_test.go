package db

import (
	"database/sql"
	"testing"
	"time"
)

type sqlTestDB struct {
	*sql.DB
}

func (tdb *sqlTestDB) insertPoll(t *testing.T) int64 {
	t.Helper()

	var id int64
	err := tdb.QueryRow(
		"INSERT INTO poll (title, description, status, created_at) VALUES ('Test', '', 'open', $1) RETURNING id",
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert poll: %v", err)
	}
	return id
}
