// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/db"
	"github.com/danielhkuo/tokenpoll/router"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "serve [-p port] [-d url] [-t sqlite|postgres] [-c config.yaml]",
		Short:              "Run the HTTP server (default)",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args)
		},
	}
}

func runServe(args []string) error {
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	server := &http.Server{
		Handler:           router.NewRouter(conn, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ctrlc)

	go func() {
		<-ctrlc
		slog.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	slog.Info("Listening", "port", cfg.Port, "base_url", cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	slog.Info("Server closed")
	return nil
}
