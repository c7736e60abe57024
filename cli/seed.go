// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/db"
	"github.com/danielhkuo/tokenpoll/polls"
	"github.com/danielhkuo/tokenpoll/views"
)

// Sample poll written by seed
const (
	seedTitle       = "Sample vote"
	seedDescription = "Pick your favorite option"
	seedTokenCount  = 5
)

var seedOptions = []string{"A", "B", "C"}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Wipe the database and create a sample poll",
		Long: `Deletes every poll, option, token, voter and vote, then creates a
sample poll with options A, B and C and five tokens. The token links are
printed so the flow can be tried right away.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.ParseFlags(args)
			if err != nil {
				return fmt.Errorf("error parsing flags: %w", err)
			}

			conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			return runSeed(cmd.Context(), conn, cfg, cmd.OutOrStdout())
		},
	}
}

func runSeed(ctx context.Context, conn *sql.DB, cfg cliparse.Config, out io.Writer) error {
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	if err := db.Reset(ctx, conn); err != nil {
		return err
	}

	svc := polls.NewService(conn)
	pollID, err := svc.CreatePoll(ctx, polls.CreatePollParams{
		Title:       seedTitle,
		Description: seedDescription,
		Options:     seedOptions,
		TokenCount:  seedTokenCount,
	})
	if err != nil {
		return fmt.Errorf("failed to create sample poll: %w", err)
	}

	detail, err := svc.GetPollDetail(ctx, pollID)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(out, "%s Created poll id: %d\n", green("Seed complete."), pollID)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Admin:   %s\n", cyan(fmt.Sprintf("%s/admin/poll/%d?p=%s", cfg.BaseURL, pollID, url.QueryEscape(cfg.AdminPassword))))
	fmt.Fprintf(out, "Results: %s\n", cyan(fmt.Sprintf("%s/results/%d", cfg.BaseURL, pollID)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Token links:")
	for _, tok := range detail.Tokens {
		fmt.Fprintf(out, "  %s  %s\n", tok.Code, cyan(views.TokenURL(cfg.BaseURL, tok.Code)))
	}

	return nil
}
