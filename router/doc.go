// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for tokenpoll.

# Route Registration

NewRouter builds a chi router with every endpoint:

	handler := router.NewRouter(db, cfg)

Handlers read path parameters with r.PathValue, which chi fills in, so
they can be tested without the router by calling req.SetPathValue.

# Endpoints

Health and landing:

	GET /health
	GET /

Admin (password via ?p= or the key form field):

	GET  /admin                   - Poll list and create form
	POST /admin/create            - Create poll
	GET  /admin/poll/{id}         - Poll detail with token links
	POST /admin/poll/{id}/status  - Open or close
	GET  /admin/poll/{id}/export  - CSV download

Voting (token holders):

	GET  /t/{code}         - Ballot
	POST /vote             - Submit
	GET  /thanks/{pollId}  - Confirmation

Public:

	GET /results/{pollId}  - Results, ?format=json for JSON
	GET /qr?data=...       - QR code PNG

Every route except /health is wrapped with middleware.WithLogging.
*/
package router
