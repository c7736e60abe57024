// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/tokenpoll/auth"
	"github.com/danielhkuo/tokenpoll/db"
	"github.com/danielhkuo/tokenpoll/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidPoll      = errors.New("invalid poll")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidToken     = errors.New("invalid token")
	ErrPollClosed       = errors.New("poll is closed")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrInvalidOption    = errors.New("option does not belong to this poll")
	ErrCodeCollision    = errors.New("token code collision")
)

// maxCreateAttempts bounds retries when a generated code is already taken.
const maxCreateAttempts = 3

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Service struct {
	db    *sql.DB
	now   func() time.Time
	codes func(n int) ([]string, error)
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		codes: auth.GenerateTokenCodes,
	}
}

type CreatePollParams struct {
	Title       string
	Description string
	Options     []string
	TokenCount  int
	// Assignees are written to the first len(Assignees) tokens.
	Assignees []string
}

// CreatePoll inserts a poll, its options and its tokens in one transaction
// and returns the new poll id.
func (s *Service) CreatePoll(ctx context.Context, p CreatePollParams) (int64, error) {
	title := strings.TrimSpace(p.Title)
	labels := cleanList(p.Options)
	assignees := cleanList(p.Assignees)

	if title == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidPoll)
	}
	if len(labels) == 0 {
		return 0, fmt.Errorf("%w: at least one option is required", ErrInvalidPoll)
	}
	if p.TokenCount < 1 {
		return 0, fmt.Errorf("%w: token count must be at least 1", ErrInvalidPoll)
	}
	if len(assignees) > p.TokenCount {
		return 0, fmt.Errorf("%w: %d names for %d tokens", ErrInvalidPoll, len(assignees), p.TokenCount)
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		pollID, err := s.createPoll(ctx, title, strings.TrimSpace(p.Description), labels, p.TokenCount, assignees)
		if errors.Is(err, ErrCodeCollision) {
			slog.Warn("token code collision, retrying poll creation", "attempt", attempt)
			continue
		}
		if err != nil {
			return 0, err
		}

		slog.Info("poll created", "poll_id", pollID, "options", len(labels), "tokens", p.TokenCount)
		return pollID, nil
	}

	return 0, ErrCodeCollision
}

func (s *Service) createPoll(ctx context.Context, title, description string, labels []string, tokenCount int, assignees []string) (int64, error) {
	codes, err := s.codes(tokenCount)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pollID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO poll (title, description, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, title, description, models.StatusOpen, s.now()).Scan(&pollID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert poll: %w", err)
	}

	for ord, label := range labels {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, label, ord)
			VALUES ($1, $2, $3)
		`, pollID, label, ord)
		if err != nil {
			return 0, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	for i, code := range codes {
		var assignee sql.NullString
		if i < len(assignees) {
			assignee = sql.NullString{String: assignees[i], Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO token (poll_id, code, assigned_to_name)
			VALUES ($1, $2, $3)
		`, pollID, code, assignee)
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("failed to insert token %s: %w", code, ErrCodeCollision)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to insert token: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit poll: %w", err)
	}

	return pollID, nil
}

// SetStatus opens or closes a poll. Unknown poll ids are a no-op.
func (s *Service) SetStatus(ctx context.Context, pollID int64, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	res, err := s.db.ExecContext(ctx, `UPDATE poll SET status = $1 WHERE id = $2`, status, pollID)
	if err != nil {
		return fmt.Errorf("failed to update poll status: %w", err)
	}

	n, _ := res.RowsAffected()
	slog.Info("poll status changed", "poll_id", pollID, "status", status, "rows", n)
	return nil
}

// ListPolls returns every poll, newest first.
func (s *Service) ListPolls(ctx context.Context) ([]models.PollSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.description, p.status, p.created_at,
		       (SELECT COUNT(*) FROM token t WHERE t.poll_id = p.id),
		       (SELECT COUNT(*) FROM token t WHERE t.poll_id = p.id AND t.used_at IS NOT NULL),
		       (SELECT COUNT(*) FROM vote v WHERE v.poll_id = p.id)
		FROM poll p
		ORDER BY p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var ps models.PollSummary
		err := rows.Scan(&ps.ID, &ps.Title, &ps.Description, &ps.Status, &ps.CreatedAt,
			&ps.TokenCount, &ps.UsedTokens, &ps.VoteCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, ps)
	}
	return polls, rows.Err()
}

// GetPoll returns a single poll or ErrNotFound.
func (s *Service) GetPoll(ctx context.Context, pollID int64) (models.Poll, error) {
	return getPoll(ctx, s.db, pollID)
}

// GetPollDetail returns the poll with its options, tokens and counts.
func (s *Service) GetPollDetail(ctx context.Context, pollID int64) (models.PollDetail, error) {
	var detail models.PollDetail

	poll, err := getPoll(ctx, s.db, pollID)
	if err != nil {
		return detail, err
	}
	detail.Poll = poll

	if detail.Options, err = getOptions(ctx, s.db, pollID); err != nil {
		return detail, err
	}
	if detail.Tokens, err = getTokens(ctx, s.db, pollID); err != nil {
		return detail, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&detail.VoteCount)
	if err != nil {
		return detail, fmt.Errorf("failed to count votes: %w", err)
	}

	for _, t := range detail.Tokens {
		if t.Used() {
			detail.UsedTokens++
		}
	}

	return detail, nil
}

func getPoll(ctx context.Context, q querier, pollID int64) (models.Poll, error) {
	var p models.Poll
	err := q.QueryRowContext(ctx, `
		SELECT id, title, description, status, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return p, fmt.Errorf("poll %d: %w", pollID, ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("failed to get poll: %w", err)
	}
	return p, nil
}

func getOptions(ctx context.Context, q querier, pollID int64) ([]models.Option, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, poll_id, label, ord
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY ord ASC, id ASC
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Label, &opt.Ord); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func getTokens(ctx context.Context, q querier, pollID int64) ([]models.Token, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, poll_id, code, assigned_to_name, used_at
		FROM token
		WHERE poll_id = $1
		ORDER BY id ASC
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	tokens := []models.Token{}
	for rows.Next() {
		var (
			tok      models.Token
			assignee sql.NullString
			usedAt   sql.NullTime
		)
		if err := rows.Scan(&tok.ID, &tok.PollID, &tok.Code, &assignee, &usedAt); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tok.AssignedToName = assignee.String
		if usedAt.Valid {
			tok.UsedAt = &usedAt.Time
		}
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

// cleanList trims every entry and drops the empty ones.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
