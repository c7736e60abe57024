// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/tokenpoll/models"
)

// Page names
const (
	PageIndex       = "index"
	PageAdmin       = "admin"
	PagePollAdmin   = "poll_admin"
	PageVote        = "vote"
	PageClosed      = "closed"
	PageAlreadyUsed = "already_used"
	PageThanks      = "thanks"
	PageResults     = "results"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"ago":       humanize.Time,
	"timestamp": timestamp,
	"percent":   percent,
	"tokenURL":  TokenURL,
	"qrURL":     QRURL,
}).ParseFS(templateFS, "templates/*.html"))

// Page data

type IndexPage struct {
	BaseURL string
}

type AdminPage struct {
	Key   string
	Polls []models.PollSummary
}

type PollAdminPage struct {
	Key     string
	BaseURL string
	Detail  models.PollDetail
}

type VotePage struct {
	Ballot models.TokenBallot
}

// NoticePage backs the closed, already_used and thanks pages.
type NoticePage struct {
	Poll models.Poll
}

type ResultsPage struct {
	Results models.Results
}

// Render executes the named page and writes it with the given status.
// Nothing is written to w if the template fails.
func Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "page", name, "error", err)
	}
}

// TokenURL is the public link a token holder opens to vote.
func TokenURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/t/" + url.PathEscape(code)
}

// QRURL is the image URL for a QR code of link.
func QRURL(link string) string {
	return "/qr?data=" + url.QueryEscape(link)
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func percent(r models.Results, o models.OptionResult) string {
	return fmt.Sprintf("%.1f%%", r.Percent(o))
}
