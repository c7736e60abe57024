// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/tokenpoll/models"
	"github.com/danielhkuo/tokenpoll/testutil"
)

func TestCreatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	pollID, err := svc.CreatePoll(ctx, CreatePollParams{
		Title:       "  Lunch?  ",
		Description: "Pick one",
		Options:     []string{"Pizza", "", "  Sushi ", "Tacos"},
		TokenCount:  4,
	})
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	detail, err := svc.GetPollDetail(ctx, pollID)
	if err != nil {
		t.Fatalf("GetPollDetail() error = %v", err)
	}

	if detail.Poll.Title != "Lunch?" {
		t.Errorf("Expected trimmed title, got %q", detail.Poll.Title)
	}
	if detail.Poll.Status != models.StatusOpen {
		t.Errorf("Expected status open, got %s", detail.Poll.Status)
	}

	wantLabels := []string{"Pizza", "Sushi", "Tacos"}
	if len(detail.Options) != len(wantLabels) {
		t.Fatalf("Expected %d options, got %d", len(wantLabels), len(detail.Options))
	}
	for i, opt := range detail.Options {
		if opt.Label != wantLabels[i] {
			t.Errorf("Option %d: expected %s, got %s", i, wantLabels[i], opt.Label)
		}
		if opt.Ord != i {
			t.Errorf("Option %d: expected ord %d, got %d", i, i, opt.Ord)
		}
	}

	if len(detail.Tokens) != 4 {
		t.Fatalf("Expected 4 tokens, got %d", len(detail.Tokens))
	}
	for _, tok := range detail.Tokens {
		if tok.Used() {
			t.Errorf("New token %s should be unused", tok.Code)
		}
		if len(tok.Code) != 8 {
			t.Errorf("Token code %q should have 8 characters", tok.Code)
		}
	}
	if detail.VoteCount != 0 || detail.UsedTokens != 0 {
		t.Errorf("Expected zero counts, got votes=%d used=%d", detail.VoteCount, detail.UsedTokens)
	}
}

func TestCreatePollValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)

	tests := []struct {
		name   string
		params CreatePollParams
	}{
		{"no options", CreatePollParams{Title: "Q", Options: nil, TokenCount: 2}},
		{"only blank options", CreatePollParams{Title: "Q", Options: []string{" ", ""}, TokenCount: 2}},
		{"zero tokens", CreatePollParams{Title: "Q", Options: []string{"A"}, TokenCount: 0}},
		{"negative tokens", CreatePollParams{Title: "Q", Options: []string{"A"}, TokenCount: -1}},
		{"empty title", CreatePollParams{Title: "   ", Options: []string{"A"}, TokenCount: 1}},
		{"more names than tokens", CreatePollParams{Title: "Q", Options: []string{"A"}, TokenCount: 1, Assignees: []string{"Ann", "Bob"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePoll(context.Background(), tt.params)
			if !errors.Is(err, ErrInvalidPoll) {
				t.Errorf("Expected ErrInvalidPoll, got %v", err)
			}
		})
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM poll").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected no polls after failed creations, got %d", count)
	}
}

func TestCreatePollAssignees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	pollID, err := svc.CreatePoll(ctx, CreatePollParams{
		Title:      "Class rep",
		Options:    []string{"Ana", "Luis"},
		TokenCount: 3,
		Assignees:  []string{"Marta", " ", "Pedro"},
	})
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	detail, err := svc.GetPollDetail(ctx, pollID)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Marta", "Pedro", ""}
	for i, tok := range detail.Tokens {
		if tok.AssignedToName != want[i] {
			t.Errorf("Token %d: expected assignee %q, got %q", i, want[i], tok.AssignedToName)
		}
	}
}

func TestTokenCodesUniqueAcrossPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreatePoll(ctx, CreatePollParams{Title: "P", Options: []string{"A"}, TokenCount: 20}); err != nil {
			t.Fatal(err)
		}
	}

	var total, distinct int
	if err := db.QueryRow("SELECT COUNT(*), COUNT(DISTINCT code) FROM token").Scan(&total, &distinct); err != nil {
		t.Fatal(err)
	}
	if total != 100 || distinct != 100 {
		t.Errorf("Expected 100 distinct codes, got total=%d distinct=%d", total, distinct)
	}
}

func TestCreatePollRetriesOnCodeCollision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	existing := testutil.CreateTestPoll(t, db, "Existing", models.StatusOpen)
	testutil.AddTestToken(t, db, existing, "AAAAAAAA")

	calls := 0
	svc.codes = func(n int) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"AAAAAAAA"}, nil
		}
		return []string{"BBBBBBBB"}, nil
	}

	pollID, err := svc.CreatePoll(ctx, CreatePollParams{Title: "New", Options: []string{"A"}, TokenCount: 1})
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 generation attempts, got %d", calls)
	}

	detail, err := svc.GetPollDetail(ctx, pollID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Tokens) != 1 || detail.Tokens[0].Code != "BBBBBBBB" {
		t.Errorf("Expected single token BBBBBBBB, got %+v", detail.Tokens)
	}

	// The failed attempt must not leave a half-written poll behind
	var polls int
	if err := db.QueryRow("SELECT COUNT(*) FROM poll").Scan(&polls); err != nil {
		t.Fatal(err)
	}
	if polls != 2 {
		t.Errorf("Expected 2 polls, got %d", polls)
	}
}

func TestCreatePollGivesUpAfterRepeatedCollisions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)

	existing := testutil.CreateTestPoll(t, db, "Existing", models.StatusOpen)
	testutil.AddTestToken(t, db, existing, "CCCCCCCC")

	svc.codes = func(n int) ([]string, error) { return []string{"CCCCCCCC"}, nil }

	_, err := svc.CreatePoll(context.Background(), CreatePollParams{Title: "New", Options: []string{"A"}, TokenCount: 1})
	if !errors.Is(err, ErrCodeCollision) {
		t.Errorf("Expected ErrCodeCollision, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	pollID := testutil.CreateTestPoll(t, db, "Toggle", models.StatusOpen)

	for _, status := range []string{models.StatusClosed, models.StatusOpen, models.StatusClosed} {
		if err := svc.SetStatus(ctx, pollID, status); err != nil {
			t.Fatalf("SetStatus(%s) error = %v", status, err)
		}
		poll, err := svc.GetPoll(ctx, pollID)
		if err != nil {
			t.Fatal(err)
		}
		if poll.Status != status {
			t.Errorf("Expected status %s, got %s", status, poll.Status)
		}
	}

	if err := svc.SetStatus(ctx, pollID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}

	// Unknown poll is a no-op
	if err := svc.SetStatus(ctx, 9999, models.StatusClosed); err != nil {
		t.Errorf("Expected no error for unknown poll, got %v", err)
	}
}

func TestGetPollDetailNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)

	_, err := svc.GetPollDetail(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first := testutil.CreateTestPoll(t, db, "First", models.StatusOpen)
	opt := testutil.AddTestOption(t, db, first, "A", 0)
	testutil.AddTestToken(t, db, first, "FIRST222")
	testutil.AddTestToken(t, db, first, "FIRST333")
	testutil.CastTestVote(t, db, first, opt, "FIRST222", "Ann")
	second := testutil.CreateTestPoll(t, db, "Second", models.StatusClosed)

	polls, err := svc.ListPolls(ctx)
	if err != nil {
		t.Fatalf("ListPolls() error = %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}

	// Newest first
	if polls[0].ID != second || polls[1].ID != first {
		t.Errorf("Expected order [%d %d], got [%d %d]", second, first, polls[0].ID, polls[1].ID)
	}

	got := polls[1]
	if got.TokenCount != 2 || got.UsedTokens != 1 || got.VoteCount != 1 {
		t.Errorf("Unexpected counts: tokens=%d used=%d votes=%d", got.TokenCount, got.UsedTokens, got.VoteCount)
	}
}
