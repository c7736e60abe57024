// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootCmd returns the tokenpoll command. Without a subcommand it serves.
// Flags are handed to cliparse untouched so that every subcommand shares
// one set of settings.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tokenpoll",
		Short: "Single-use link voting server",
		Long: `tokenpoll runs small polls where every voter gets a one-time link.

Configuration comes from flags, environment variables (a .env file in the
working directory is loaded first) and an optional YAML file given with -c.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadDotEnv(".env")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args)
		},
	}

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(SeedCmd())

	return rootCmd
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is fine.
func loadDotEnv(path string) {
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("loaded environment file", "path", path)
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load environment file", "path", path, "error", err)
	}
}
