// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the server-side HTML pages.

Templates live in templates/ and are embedded into the binary. Each page
file defines one named template plus the shared "head" and "foot" partials
from layout.html:

	views.Render(w, http.StatusOK, views.PageVote, views.VotePage{Ballot: ballot})

Render buffers the output so a template error turns into a clean 500
instead of a half-written page.
*/
package views
