package matchdomain

import "time"

// PlayerStatus is one user's participation state in one match.
type PlayerStatus string

const (
	PlayerInvited   PlayerStatus = "invited"
	PlayerConfirmed PlayerStatus = "confirmed"
	PlayerDeclined  PlayerStatus = "declined"
	PlayerMaybe     PlayerStatus = "maybe"
)

// IsValid reports whether s is a known roster status.
func (s PlayerStatus) IsValid() bool {
	switch s {
	case PlayerInvited, PlayerConfirmed, PlayerDeclined, PlayerMaybe:
		return true
	default:
		return false
	}
}

// CanRespond reports whether an invitation response is accepted from s.
func (s PlayerStatus) CanRespond() bool {
	return s == PlayerInvited || s == PlayerMaybe
}

// ResponseType is a player's answer to an invitation.
type ResponseType string

const (
	ResponseAccepted ResponseType = "accepted"
	ResponseDeclined ResponseType = "declined"
	ResponseMaybe    ResponseType = "maybe"
)

// IsValid reports whether r is a known response.
func (r ResponseType) IsValid() bool {
	switch r {
	case ResponseAccepted, ResponseDeclined, ResponseMaybe:
		return true
	default:
		return false
	}
}

// TargetStatus is the roster status a response moves the entry to.
func (r ResponseType) TargetStatus() PlayerStatus {
	switch r {
	case ResponseAccepted:
		return PlayerConfirmed
	case ResponseDeclined:
		return PlayerDeclined
	default:
		return PlayerMaybe
	}
}

// RosterPlayer is a roster entry joined with the user's names.
type RosterPlayer struct {
	MatchPlayerID int64        `json:"match_player_id"`
	MatchID       int64        `json:"match_id"`
	UserID        int64        `json:"user_id"`
	Username      string       `json:"username"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Status        PlayerStatus `json:"status"`
	RespondedAt   *time.Time   `json:"responded_at"`
	CreatedAt     time.Time    `json:"created_at"`
}

// PlayerResponse is one entry of the append-only response log.
type PlayerResponse struct {
	ResponseID    int64        `json:"response_id"`
	MatchPlayerID int64        `json:"match_player_id"`
	ResponseType  ResponseType `json:"response_type"`
	Comment       *string      `json:"comment"`
	ResponseTime  time.Time    `json:"response_time"`
}
