package matchdomain

// CreateMatchRequest carries the fields a creator supplies. Times are raw
// strings so both RFC 3339 and natural-language input can be parsed.
type CreateMatchRequest struct {
	SportID              *int64  `json:"sport_id"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	Location             *string `json:"location"`
	RequiredSkillLevel   *int64  `json:"required_skill_level"`
	MinPlayers           *int    `json:"min_players"`
	ConfirmationDeadline string  `json:"confirmation_deadline"`
	AutoCancel           *bool   `json:"auto_cancel"`
	PlayerIDs            []int64 `json:"player_ids"`
}

// UpdateMatchRequest is a partial update; nil fields keep their stored value.
type UpdateMatchRequest struct {
	StartTime            *string      `json:"start_time"`
	EndTime              *string      `json:"end_time"`
	Location             *string      `json:"location"`
	Status               *MatchStatus `json:"status"`
	RequiredSkillLevel   *int64       `json:"required_skill_level"`
	MinPlayers           *int         `json:"min_players"`
	ConfirmationDeadline *string      `json:"confirmation_deadline"`
	AutoCancel           *bool        `json:"auto_cancel"`
}

// InvitePlayersRequest lists the users to add to a roster.
type InvitePlayersRequest struct {
	PlayerIDs []int64 `json:"player_ids"`
}

// RespondRequest is a player's answer to an invitation.
type RespondRequest struct {
	Response ResponseType `json:"response"`
	Comment  *string      `json:"comment"`
}
