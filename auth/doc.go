// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voting token generation and the admin secret check.

# Token Codes

Token codes are 8 symbols drawn from a 32-symbol alphabet without the
visually confusable 0, O, 1 and I:

	code, err := auth.GenerateTokenCode()     // e.g. "K7Q2XMPA"
	codes, err := auth.GenerateTokenCodes(25) // distinct within the batch

Codes are not checked against the database here. The token table has a
UNIQUE constraint on code and poll creation retries when it fires.

# Admin Secret

The admin pages are gated by a single shared secret from configuration:

	if err := auth.ValidateAdminSecret(r.URL.Query().Get("p"), cfg.AdminPassword); err != nil {
		// 401
	}

The comparison runs in constant time and an empty secret never matches.
*/
package auth
