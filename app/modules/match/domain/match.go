package matchdomain

import "time"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusPendingConfirmation MatchStatus = "pending_confirmation"
	StatusConfirmed           MatchStatus = "confirmed"
	StatusCanceled            MatchStatus = "canceled"
	StatusCompleted           MatchStatus = "completed"
)

// IsValid reports whether s is a known match status.
func (s MatchStatus) IsValid() bool {
	switch s {
	case StatusPendingConfirmation, StatusConfirmed, StatusCanceled, StatusCompleted:
		return true
	default:
		return false
	}
}

// DefaultListLimit is applied when a list query names no limit.
const DefaultListLimit = 50

// Match is a scheduled game of one sport.
type Match struct {
	ID                   int64       `json:"match_id"`
	SportID              int64       `json:"sport_id"`
	SportName            string      `json:"sport_name,omitempty"`
	StartTime            time.Time   `json:"start_time"`
	EndTime              time.Time   `json:"end_time"`
	Location             *string     `json:"location"`
	Status               MatchStatus `json:"status"`
	RequiredSkillLevel   *int64      `json:"required_skill_level"`
	SkillLevelName       *string     `json:"skill_level_name,omitempty"`
	MinPlayers           int         `json:"min_players"`
	ConfirmedPlayers     int         `json:"confirmed_players"`
	ConfirmationDeadline time.Time   `json:"confirmation_deadline"`
	AutoCancel           bool        `json:"auto_cancel"`
	CreatedBy            int64       `json:"created_by"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// MatchDetails is a match together with its roster.
type MatchDetails struct {
	Match   *Match         `json:"match"`
	Players []RosterPlayer `json:"players"`
}

// UserMatch is a match seen from one participant, carrying their roster status.
type UserMatch struct {
	Match
	PlayerStatus PlayerStatus `json:"player_status"`
}

// MatchFilter narrows ListMatches. Nil fields are ignored.
type MatchFilter struct {
	SportID      *int64
	Status       *MatchStatus
	FromDate     *time.Time
	ToDate       *time.Time
	SkillLevelID *int64
	Limit        int
	Offset       int
}

// Normalize applies the default page size and clamps negative offsets.
func (f MatchFilter) Normalize() MatchFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
