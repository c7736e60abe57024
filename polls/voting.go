// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/tokenpoll/models"
)

// LookupToken loads a token with its poll and options for the landing page.
// ErrPollClosed and ErrTokenAlreadyUsed come back with the ballot filled in
// so the caller can still name the poll.
func (s *Service) LookupToken(ctx context.Context, code string) (models.TokenBallot, error) {
	var ballot models.TokenBallot

	tok, err := getTokenByCode(ctx, s.db, code)
	if err == sql.ErrNoRows {
		return ballot, fmt.Errorf("token %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return ballot, err
	}
	ballot.Token = tok

	if ballot.Poll, err = getPoll(ctx, s.db, tok.PollID); err != nil {
		return ballot, err
	}
	if !ballot.Poll.IsOpen() {
		return ballot, ErrPollClosed
	}
	if tok.Used() {
		return ballot, ErrTokenAlreadyUsed
	}

	if ballot.Options, err = getOptions(ctx, s.db, tok.PollID); err != nil {
		return ballot, err
	}
	return ballot, nil
}

// SubmitVote redeems a token: it records a voter and a vote and marks the
// token used, all in one transaction. It returns the poll id.
func (s *Service) SubmitVote(ctx context.Context, code, voterName string, optionID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tok, err := getTokenByCode(ctx, tx, code)
	if err == sql.ErrNoRows {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM poll WHERE id = $1`, tok.PollID).Scan(&status)
	if err == sql.ErrNoRows || (err == nil && status != models.StatusOpen) {
		return 0, ErrPollClosed
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query poll: %w", err)
	}

	if tok.Used() {
		return 0, ErrTokenAlreadyUsed
	}

	var matches int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM poll_option WHERE id = $1 AND poll_id = $2
	`, optionID, tok.PollID).Scan(&matches)
	if err != nil {
		return 0, fmt.Errorf("failed to verify option: %w", err)
	}
	if matches == 0 {
		return 0, fmt.Errorf("option %d: %w", optionID, ErrInvalidOption)
	}

	now := s.now()

	// The used_at guard decides races between two submissions of one code.
	res, err := tx.ExecContext(ctx, `
		UPDATE token SET used_at = $1 WHERE id = $2 AND used_at IS NULL
	`, now, tok.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark token used: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("failed to mark token used: %w", err)
	} else if n != 1 {
		return 0, ErrTokenAlreadyUsed
	}

	var voterID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO voter (poll_id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, tok.PollID, strings.TrimSpace(voterName), now).Scan(&voterID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert voter: %w", err)
	}

	var voteID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO vote (poll_id, option_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, tok.PollID, optionID, voterID, now).Scan(&voteID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit vote: %w", err)
	}

	slog.Info("vote recorded", "poll_id", tok.PollID, "vote_id", voteID, "token_id", tok.ID)
	return tok.PollID, nil
}

// getTokenByCode returns sql.ErrNoRows unwrapped when the code is unknown.
func getTokenByCode(ctx context.Context, q querier, code string) (models.Token, error) {
	var (
		tok      models.Token
		assignee sql.NullString
		usedAt   sql.NullTime
	)

	err := q.QueryRowContext(ctx, `
		SELECT id, poll_id, code, assigned_to_name, used_at
		FROM token
		WHERE code = $1
	`, code).Scan(&tok.ID, &tok.PollID, &tok.Code, &assignee, &usedAt)
	if err == sql.ErrNoRows {
		return tok, err
	}
	if err != nil {
		return tok, fmt.Errorf("failed to query token: %w", err)
	}

	tok.AssignedToName = assignee.String
	if usedAt.Valid {
		tok.UsedAt = &usedAt.Time
	}
	return tok, nil
}
