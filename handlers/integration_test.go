// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/tokenpoll/models"
	"github.com/danielhkuo/tokenpoll/testutil"
)

// TestFullVotingWorkflow walks the whole flow through the handlers:
// 1. Admin creates "Color?" with Red and Blue and two tokens
// 2. Token 1 votes Red
// 3. Results show Red:1 Blue:0
// 4. Token 2 votes Blue
// 5. Results show Red:1 Blue:1
// 6. Token 1 cannot vote again
// 7. CSV export lists both voters
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	admin := NewAdminHandler(db, cfg)
	voting := NewVotingHandler(db, cfg)
	results := NewResultsHandler(db, cfg)

	// Step 1: create the poll
	w := httptest.NewRecorder()
	admin.CreatePoll(w, testutil.MakeFormRequest("/admin/create", url.Values{
		"key":         {cfg.AdminPassword},
		"title":       {"Color?"},
		"options":     {"Red\nBlue"},
		"token_count": {"2"},
	}))
	testutil.AssertStatus(t, w, http.StatusSeeOther)

	var pollID int64
	if _, err := fmt.Sscanf(w.Header().Get("Location"), "/admin/poll/%d", &pollID); err != nil {
		t.Fatalf("Step 1 - bad redirect %q", w.Header().Get("Location"))
	}
	id := strconv.FormatInt(pollID, 10)

	rows, err := db.Query("SELECT code FROM token WHERE poll_id = $1 ORDER BY id", pollID)
	if err != nil {
		t.Fatal(err)
	}
	var codes []string
	for rows.Next() {
		var c string
		rows.Scan(&c)
		codes = append(codes, c)
	}
	rows.Close()
	if len(codes) != 2 {
		t.Fatalf("Step 1 - expected 2 tokens, got %d", len(codes))
	}

	optionIDs := map[string]int64{}
	orows, err := db.Query("SELECT id, label FROM poll_option WHERE poll_id = $1", pollID)
	if err != nil {
		t.Fatal(err)
	}
	for orows.Next() {
		var (
			oid   int64
			label string
		)
		orows.Scan(&oid, &label)
		optionIDs[label] = oid
	}
	orows.Close()

	tally := func(step string, wantRed, wantBlue int) {
		t.Helper()
		w := getResults(results, id, "?format=json")
		testutil.AssertStatus(t, w, http.StatusOK)

		var res models.Results
		if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
			t.Fatalf("%s - decode: %v", step, err)
		}
		got := map[string]int{}
		for _, o := range res.Options {
			got[o.Label] = o.Votes
		}
		if got["Red"] != wantRed || got["Blue"] != wantBlue {
			t.Errorf("%s - expected Red:%d Blue:%d, got %v", step, wantRed, wantBlue, got)
		}
	}

	// Step 2: token 1 lands and votes Red
	testutil.AssertStatus(t, landing(voting, codes[0]), http.StatusOK)
	testutil.AssertStatus(t, submit(voting, codes[0], "Ann", optionIDs["Red"]), http.StatusSeeOther)

	// Step 3
	tally("Step 3", 1, 0)

	// Step 4: token 2 votes Blue
	testutil.AssertStatus(t, submit(voting, codes[1], "Bob", optionIDs["Blue"]), http.StatusSeeOther)

	// Step 5
	tally("Step 5", 1, 1)

	// Step 6: token 1 is spent
	w = submit(voting, codes[0], "Ann", optionIDs["Blue"])
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	tally("Step 6", 1, 1)

	// Step 7: export
	req := httptest.NewRequest("GET", "/admin/poll/"+id+"/export?p="+cfg.AdminPassword, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	admin.ExportCSV(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Step 7 - expected 3 CSV lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"Ann","Red",`) || !strings.HasPrefix(lines[2], `"Bob","Blue",`) {
		t.Errorf("Step 7 - unexpected rows %q", lines[1:])
	}
}
