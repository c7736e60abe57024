// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/tokenpoll/auth"
	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/middleware"
	"github.com/danielhkuo/tokenpoll/polls"
	"github.com/danielhkuo/tokenpoll/views"
)

// AdminHandler serves the password-gated poll management pages.
type AdminHandler struct {
	svc *polls.Service
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{svc: polls.NewService(db), cfg: cfg}
}

// ListPolls handles GET /admin?p=
func (h *AdminHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("p")
	if err := auth.ValidateAdminSecret(key, h.cfg.AdminPassword); err != nil {
		middleware.TextError(w, http.StatusUnauthorized, "Unauthorized. Add ?p=ADMIN_PASSWORD")
		return
	}

	list, err := h.svc.ListPolls(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	views.Render(w, http.StatusOK, views.PageAdmin, views.AdminPage{Key: key, Polls: list})
}

// CreatePoll handles POST /admin/create
func (h *AdminHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	key := r.PostFormValue("key")
	if err := auth.ValidateAdminSecret(key, h.cfg.AdminPassword); err != nil {
		writeError(w, r, err)
		return
	}

	// Malformed counts fall through as 0 and are rejected by the service
	tokenCount, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("token_count")))

	pollID, err := h.svc.CreatePoll(r.Context(), polls.CreatePollParams{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Options:     strings.Split(r.PostFormValue("options"), "\n"),
		TokenCount:  tokenCount,
		Assignees:   strings.Split(r.PostFormValue("assignees"), "\n"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, adminPollURL(pollID, key), http.StatusSeeOther)
}

// GetPoll handles GET /admin/poll/{id}?p=
func (h *AdminHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("p")
	if err := auth.ValidateAdminSecret(key, h.cfg.AdminPassword); err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.svc.GetPollDetail(r.Context(), parseID(r.PathValue("id")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	views.Render(w, http.StatusOK, views.PagePollAdmin, views.PollAdminPage{
		Key:     key,
		BaseURL: h.cfg.BaseURL,
		Detail:  detail,
	})
}

// SetStatus handles POST /admin/poll/{id}/status
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	key := r.PostFormValue("key")
	if err := auth.ValidateAdminSecret(key, h.cfg.AdminPassword); err != nil {
		writeError(w, r, err)
		return
	}

	pollID := parseID(r.PathValue("id"))
	if err := h.svc.SetStatus(r.Context(), pollID, r.PostFormValue("status")); err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, adminPollURL(pollID, key), http.StatusSeeOther)
}

// ExportCSV handles GET /admin/poll/{id}/export?p=
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminSecret(r.URL.Query().Get("p"), h.cfg.AdminPassword); err != nil {
		writeError(w, r, err)
		return
	}

	pollID := parseID(r.PathValue("id"))

	var buf bytes.Buffer
	if err := h.svc.WriteCSV(r.Context(), &buf, pollID); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="poll-%d.csv"`, pollID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write CSV", "poll_id", pollID, "error", err)
	}
}

func adminPollURL(pollID int64, key string) string {
	return fmt.Sprintf("/admin/poll/%d?p=%s", pollID, url.QueryEscape(key))
}
