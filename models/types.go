package models

import "time"

// Poll status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// ValidStatus reports whether s is a poll status.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed
}

// Domain types

type Poll struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p Poll) IsOpen() bool { return p.Status == StatusOpen }

type Option struct {
	ID     int64  `json:"id"`
	PollID int64  `json:"poll_id"`
	Label  string `json:"label"`
	Ord    int    `json:"ord"`
}

type Token struct {
	ID             int64      `json:"id"`
	PollID         int64      `json:"poll_id"`
	Code           string     `json:"code"`
	AssignedToName string     `json:"assigned_to_name,omitempty"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
}

func (t Token) Used() bool { return t.UsedAt != nil }

type Voter struct {
	ID        int64     `json:"id"`
	PollID    int64     `json:"poll_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID        int64     `json:"id"`
	PollID    int64     `json:"poll_id"`
	OptionID  int64     `json:"option_id"`
	VoterID   int64     `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Read models

// PollSummary is one row of the admin poll list.
type PollSummary struct {
	Poll
	TokenCount int `json:"token_count"`
	UsedTokens int `json:"used_tokens"`
	VoteCount  int `json:"vote_count"`
}

type PollDetail struct {
	Poll       Poll     `json:"poll"`
	Options    []Option `json:"options"`
	Tokens     []Token  `json:"tokens"`
	VoteCount  int      `json:"vote_count"`
	UsedTokens int      `json:"used_tokens"`
}

// TokenBallot is what a token holder sees on the landing page.
type TokenBallot struct {
	Token   Token    `json:"token"`
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}

type OptionResult struct {
	OptionID int64  `json:"option_id"`
	Label    string `json:"label"`
	Votes    int    `json:"votes"`
}

// VoterRow is one cast vote as shown in the results list and CSV export.
type VoterRow struct {
	Name      string    `json:"name"`
	Choice    string    `json:"choice"`
	CreatedAt time.Time `json:"created_at"`
}

type Results struct {
	Poll       Poll           `json:"poll"`
	Options    []OptionResult `json:"results"`
	TotalVotes int            `json:"total_votes"`
	Voters     []VoterRow     `json:"voters"`
}

// Percent returns the share of total votes for an option, 0-100.
func (r Results) Percent(o OptionResult) float64 {
	if r.TotalVotes == 0 {
		return 0
	}
	return float64(o.Votes) * 100 / float64(r.TotalVotes)
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
