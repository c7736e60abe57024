// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/middleware"
	"github.com/danielhkuo/tokenpoll/polls"
	"github.com/danielhkuo/tokenpoll/qr"
	"github.com/danielhkuo/tokenpoll/views"
)

type ResultsHandler struct {
	svc *polls.Service
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: polls.NewService(db), cfg: cfg}
}

// GetResults handles GET /results/{pollId}
// With ?format=json the tallies are returned as JSON instead of HTML.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	asJSON := r.URL.Query().Get("format") == "json"

	res, err := h.svc.GetResults(r.Context(), parseID(r.PathValue("pollId")))
	if err != nil {
		if asJSON {
			writeJSONError(w, r, err)
		} else {
			writeError(w, r, err)
		}
		return
	}

	if asJSON {
		middleware.JSONResponse(w, http.StatusOK, res)
		return
	}
	views.Render(w, http.StatusOK, views.PageResults, views.ResultsPage{Results: res})
}

// QRCode handles GET /qr?data=
func (h *ResultsHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	data := r.URL.Query().Get("data")
	if data == "" {
		middleware.TextError(w, http.StatusBadRequest, "Missing data")
		return
	}

	png, err := qr.Render(data)
	if errors.Is(err, qr.ErrRender) {
		middleware.TextError(w, http.StatusInternalServerError, "QR error")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
