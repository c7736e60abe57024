// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/tokenpoll/auth"
	"github.com/danielhkuo/tokenpoll/middleware"
	"github.com/danielhkuo/tokenpoll/polls"
)

// statusFor maps a service error to its HTTP status and plain-text message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidAdminSecret):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, polls.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, polls.ErrInvalidToken):
		return http.StatusBadRequest, "Invalid token"
	case errors.Is(err, polls.ErrPollClosed):
		return http.StatusBadRequest, "Poll is closed"
	case errors.Is(err, polls.ErrTokenAlreadyUsed):
		return http.StatusBadRequest, "This token was already used"
	case errors.Is(err, polls.ErrInvalidOption):
		return http.StatusBadRequest, "Invalid option"
	case errors.Is(err, polls.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid status"
	case errors.Is(err, polls.ErrInvalidPoll):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	middleware.TextError(w, status, message)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	middleware.ErrorResponse(w, status, message)
}

// parseID is lenient: anything that is not a positive integer becomes 0,
// which no row uses, so lookups fail with ErrNotFound.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
