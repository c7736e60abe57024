// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/danielhkuo/tokenpoll/models"
	"github.com/danielhkuo/tokenpoll/polls"
)

// createPoll builds a poll through the service and returns its detail.
func createPoll(t *testing.T, db *sql.DB, title string, options []string, tokens int) models.PollDetail {
	t.Helper()

	svc := polls.NewService(db)
	pollID, err := svc.CreatePoll(context.Background(), polls.CreatePollParams{
		Title:      title,
		Options:    options,
		TokenCount: tokens,
	})
	if err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}

	detail, err := svc.GetPollDetail(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Failed to load poll: %v", err)
	}
	return detail
}
