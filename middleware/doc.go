// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

Wrap handlers with request logging:

	r.Get("/health", middleware.WithLogging(handler))

Every request gets an id (taken from X-Request-ID or generated with
google/uuid) that is echoed back in the response header and attached to
both log lines. Completion logs carry the status code and duration_ms.

# Responses

Plain-text errors for the HTML side of the app:

	middleware.TextError(w, http.StatusNotFound, "Poll not found")

JSON for the results API:

	middleware.JSONResponse(w, http.StatusOK, results)
	middleware.ErrorResponse(w, http.StatusNotFound, "poll not found")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
