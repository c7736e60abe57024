// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and view types shared by the store and HTTP layers.

# Domain Types

One struct per table:

  - Poll: title, description, open/closed status
  - Option: label and ord (display and tally order)
  - Token: single-use code, optional assignee, used_at once redeemed
  - Voter: name captured at vote time
  - Vote: links a voter to an option

# Read Models

  - PollSummary: admin list row with token, used-token and vote counts
  - PollDetail: poll with options, tokens and counts
  - TokenBallot: token landing page data
  - Results: per-option tallies and the voter list
  - VoterRow: name, choice, created_at (also the CSV row)

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"
*/
package models
