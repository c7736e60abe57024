// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/db"
)

// TestAdminPassword is the admin secret in GetTestConfig.
const TestAdminPassword = "test-admin-password"

// SetupTestDB opens a fresh SQLite file in a temp dir with the production schema.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "tokenpoll.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseURL:   "test.db",
		DatabaseType:  cliparse.DatabaseSQLite,
		AdminPassword: TestAdminPassword,
		BaseURL:       "https://vote.example.com",
	}
}

// CreateTestPoll inserts a poll with the given status and returns its ID.
func CreateTestPoll(t *testing.T, db *sql.DB, title, status string) int64 {
	t.Helper()

	var pollID int64
	err := db.QueryRow(`
		INSERT INTO poll (title, description, status, created_at)
		VALUES ($1, 'A test poll', $2, $3)
		RETURNING id
	`, title, status, time.Now().UTC()).Scan(&pollID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, db *sql.DB, pollID int64, label string, ord int) int64 {
	t.Helper()

	var optionID int64
	err := db.QueryRow(`
		INSERT INTO poll_option (poll_id, label, ord)
		VALUES ($1, $2, $3)
		RETURNING id
	`, pollID, label, ord).Scan(&optionID)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// AddTestToken adds an unused token with the given code to a poll.
func AddTestToken(t *testing.T, db *sql.DB, pollID int64, code string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO token (poll_id, code) VALUES ($1, $2)`, pollID, code)
	if err != nil {
		t.Fatalf("Failed to create test token: %v", err)
	}
}

// CastTestVote records a vote directly and marks the token used.
func CastTestVote(t *testing.T, db *sql.DB, pollID, optionID int64, code, name string) {
	t.Helper()

	now := time.Now().UTC()
	var voterID int64
	err := db.QueryRow(`
		INSERT INTO voter (poll_id, name, created_at) VALUES ($1, $2, $3) RETURNING id
	`, pollID, name, now).Scan(&voterID)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO vote (poll_id, option_id, voter_id, created_at) VALUES ($1, $2, $3, $4)
	`, pollID, optionID, voterID, now)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	if code != "" {
		if _, err := db.Exec(`UPDATE token SET used_at = $1 WHERE code = $2`, now, code); err != nil {
			t.Fatalf("Failed to mark test token used: %v", err)
		}
	}
}

// CountRows returns the number of rows in table matching poll_id.
func CountRows(t *testing.T, db *sql.DB, table string, pollID int64) int {
	t.Helper()

	var n int
	err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE poll_id = $1", table), pollID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeFormRequest creates a POST request with an urlencoded body.
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertBodyContains checks that the response body contains substr.
func AssertBodyContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), substr) {
		t.Errorf("Expected body to contain %q. Body: %s", substr, w.Body.String())
	}
}
