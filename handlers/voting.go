// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/middleware"
	"github.com/danielhkuo/tokenpoll/polls"
	"github.com/danielhkuo/tokenpoll/views"
)

type VotingHandler struct {
	svc *polls.Service
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: polls.NewService(db), cfg: cfg}
}

// Landing handles GET /t/{code}
func (h *VotingHandler) Landing(w http.ResponseWriter, r *http.Request) {
	ballot, err := h.svc.LookupToken(r.Context(), r.PathValue("code"))
	switch {
	case err == nil:
		views.Render(w, http.StatusOK, views.PageVote, views.VotePage{Ballot: ballot})
	case errors.Is(err, polls.ErrNotFound):
		middleware.TextError(w, http.StatusNotFound, "Invalid code")
	case errors.Is(err, polls.ErrPollClosed):
		views.Render(w, http.StatusBadRequest, views.PageClosed, views.NoticePage{Poll: ballot.Poll})
	case errors.Is(err, polls.ErrTokenAlreadyUsed):
		views.Render(w, http.StatusBadRequest, views.PageAlreadyUsed, views.NoticePage{Poll: ballot.Poll})
	default:
		writeError(w, r, err)
	}
}

// SubmitVote handles POST /vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	pollID, err := h.svc.SubmitVote(r.Context(),
		r.PostFormValue("code"),
		r.PostFormValue("name"),
		parseID(r.PostFormValue("option_id")),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/thanks/%d", pollID), http.StatusSeeOther)
}

// Thanks handles GET /thanks/{pollId}
func (h *VotingHandler) Thanks(w http.ResponseWriter, r *http.Request) {
	poll, err := h.svc.GetPoll(r.Context(), parseID(r.PathValue("pollId")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	views.Render(w, http.StatusOK, views.PageThanks, views.NoticePage{Poll: poll})
}
