// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/danielhkuo/tokenpoll/models"
	"github.com/danielhkuo/tokenpoll/polls"
	"github.com/danielhkuo/tokenpoll/testutil"
)

func TestRunSeed(t *testing.T) {
	color.NoColor = true

	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()

	// Leftovers that seed must wipe
	old := testutil.CreateTestPoll(t, db, "Old poll", models.StatusOpen)
	testutil.AddTestToken(t, db, old, "OLDT2345")

	var out bytes.Buffer
	if err := runSeed(context.Background(), db, cfg, &out); err != nil {
		t.Fatalf("runSeed() error = %v", err)
	}

	list, err := polls.NewService(db).ListPolls(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected exactly 1 poll after seed, got %d", len(list))
	}
	if list[0].Title != seedTitle || list[0].TokenCount != seedTokenCount {
		t.Errorf("Unexpected seeded poll: %+v", list[0])
	}

	if n := testutil.CountRows(t, db, "poll_option", list[0].ID); n != len(seedOptions) {
		t.Errorf("Expected %d options, got %d", len(seedOptions), n)
	}

	if got := strings.Count(out.String(), cfg.BaseURL+"/t/"); got != seedTokenCount {
		t.Errorf("Expected %d token links in output, got %d:\n%s", seedTokenCount, got, out.String())
	}
	if !strings.Contains(out.String(), "Seed complete.") {
		t.Errorf("Expected completion message, got:\n%s", out.String())
	}
}

func TestRunSeedTwice(t *testing.T) {
	color.NoColor = true

	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	for i := 0; i < 2; i++ {
		if err := runSeed(context.Background(), db, cfg, &bytes.Buffer{}); err != nil {
			t.Fatalf("runSeed() run %d error = %v", i+1, err)
		}
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM poll").Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 poll after reseeding, got %d", count)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TOKENPOLL_TEST_FROM_FILE=file\nTOKENPOLL_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TOKENPOLL_TEST_PRESET", "env")
	t.Setenv("TOKENPOLL_TEST_FROM_FILE", "")
	os.Unsetenv("TOKENPOLL_TEST_FROM_FILE")

	loadDotEnv(path)

	if got := os.Getenv("TOKENPOLL_TEST_FROM_FILE"); got != "file" {
		t.Errorf("Expected value from file, got %q", got)
	}
	if got := os.Getenv("TOKENPOLL_TEST_PRESET"); got != "env" {
		t.Errorf("Expected existing env to win, got %q", got)
	}

	// Missing file is not an error
	loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}

func TestRootCommandTree(t *testing.T) {
	root := RootCmd()

	for _, name := range []string{"serve", "seed"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Expected %s subcommand, got %v (err %v)", name, cmd, err)
		}
	}

	cmd, args, err := root.Find([]string{"-p", "8080"})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if cmd != root {
		t.Errorf("Expected flags alone to resolve to the root command, got %s", cmd.Name())
	}
	if len(args) != 2 {
		t.Errorf("Expected flags passed through, got %v", args)
	}
}
