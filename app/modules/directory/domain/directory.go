package directorydomain

import "errors"

// User is the read-only view of an account the match subsystem needs.
type User struct {
	ID        int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns "First Last", falling back to the username.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Sport is a catalog entry matches are played in.
type Sport struct {
	ID          int64   `json:"sport_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	MinPlayers  *int    `json:"min_players,omitempty"`
	MaxPlayers  *int    `json:"max_players,omitempty"`
}

// SkillLevel is a catalog entry a match may require.
type SkillLevel struct {
	ID          int64   `json:"skill_level_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSportNotFound      = errors.New("sport not found")
	ErrSkillLevelNotFound = errors.New("skill level not found")
)
