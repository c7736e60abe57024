// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danielhkuo/tokenpoll/models"
)

// TimestampLayout is ISO-8601 with milliseconds; UTC renders as "Z".
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CSVHeader is the first line of every export.
const CSVHeader = "name,choice,created_at"

// GetResults tallies votes per option in ord order, including options with
// no votes, and lists every vote in submission order.
func (s *Service) GetResults(ctx context.Context, pollID int64) (models.Results, error) {
	var res models.Results

	poll, err := getPoll(ctx, s.db, pollID)
	if err != nil {
		return res, err
	}
	res.Poll = poll

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.label, COUNT(v.id)
		FROM poll_option o
		LEFT JOIN vote v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.label, o.ord
		ORDER BY o.ord ASC, o.id ASC
	`, pollID)
	if err != nil {
		return res, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	res.Options = []models.OptionResult{}
	for rows.Next() {
		var or models.OptionResult
		if err := rows.Scan(&or.OptionID, &or.Label, &or.Votes); err != nil {
			return res, fmt.Errorf("failed to scan tally: %w", err)
		}
		res.TotalVotes += or.Votes
		res.Options = append(res.Options, or)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("failed to tally votes: %w", err)
	}

	if res.Voters, err = s.voterRows(ctx, pollID); err != nil {
		return res, err
	}
	return res, nil
}

// WriteCSV writes the voter list of a poll as CSV. Every field is quoted.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, pollID int64) error {
	if _, err := getPoll(ctx, s.db, pollID); err != nil {
		return err
	}

	voters, err := s.voterRows(ctx, pollID)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return err
	}
	for _, v := range voters {
		line := quoteCSV(v.Name) + "," + quoteCSV(v.Choice) + "," + quoteCSV(FormatTimestamp(v.CreatedAt)) + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) voterRows(ctx context.Context, pollID int64) ([]models.VoterRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT voter.name, poll_option.label, vote.created_at
		FROM vote
		JOIN voter ON voter.id = vote.voter_id
		JOIN poll_option ON poll_option.id = vote.option_id
		WHERE vote.poll_id = $1
		ORDER BY vote.id ASC
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []models.VoterRow{}
	for rows.Next() {
		var v models.VoterRow
		if err := rows.Scan(&v.Name, &v.Choice, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, v)
	}
	return voters, rows.Err()
}

// FormatTimestamp renders t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
