// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for tokenpoll.

# Handler Types

Each handler is a struct built from the database and config:

  - AdminHandler: poll list, creation, detail, open/close and CSV export
  - VotingHandler: token landing page, vote submission, thank-you page
  - ResultsHandler: tallies (HTML or JSON) and QR images

	adminHandler := handlers.NewAdminHandler(db, cfg)

Handlers parse forms and path values, call polls.Service and render a page
from package views. Business rules live in the service.

# Admin Pages

Every admin route needs the admin password, as ?p= on GET requests and as
the key form field on POST requests:

	GET  /admin?p=...                   → ListPolls
	POST /admin/create                  → CreatePoll (303 to the detail page)
	GET  /admin/poll/{id}?p=...         → GetPoll
	POST /admin/poll/{id}/status        → SetStatus (303 to the detail page)
	GET  /admin/poll/{id}/export?p=...  → ExportCSV

# Voting Flow

	GET  /t/{code}         → Landing (ballot, or closed / already-used notice)
	POST /vote             → SubmitVote (303 to /thanks/{pollId})
	GET  /thanks/{pollId}  → Thanks

# Errors

Service errors map to plain-text responses: 401 for a bad admin password,
404 for missing polls and codes, 400 for rejected votes and invalid input,
500 for everything else (logged).
*/
package handlers
