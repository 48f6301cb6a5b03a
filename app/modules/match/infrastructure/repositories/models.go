package matchdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Match is a row of the matches table. SportName and SkillLevelName are
// filled by joined reads only.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID                   int64     `bun:"match_id,pk,autoincrement"`
	SportID              int64     `bun:"sport_id,notnull"`
	StartTime            time.Time `bun:"start_time,notnull"`
	EndTime              time.Time `bun:"end_time,notnull"`
	Location             *string   `bun:"location"`
	Status               string    `bun:"status,notnull"`
	RequiredSkillLevel   *int64    `bun:"required_skill_level"`
	MinPlayers           int       `bun:"min_players,notnull"`
	ConfirmedPlayers     int       `bun:"confirmed_players,notnull"`
	ConfirmationDeadline time.Time `bun:"confirmation_deadline,notnull"`
	AutoCancel           bool      `bun:"auto_cancel,notnull"`
	CreatedBy            int64     `bun:"created_by,notnull"`
	CreatedAt            time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt            time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	SportName      string  `bun:"sport_name,scanonly"`
	SkillLevelName *string `bun:"skill_level_name,scanonly"`
}

// MatchPlayer is a roster entry. The user columns are filled by joined reads.
type MatchPlayer struct {
	bun.BaseModel `bun:"table:match_players,alias:mp"`

	ID          int64      `bun:"match_player_id,pk,autoincrement"`
	MatchID     int64      `bun:"match_id,notnull"`
	UserID      int64      `bun:"user_id,notnull"`
	Status      string     `bun:"status,notnull"`
	RespondedAt *time.Time `bun:"responded_at"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`

	Username  string `bun:"username,scanonly"`
	FirstName string `bun:"first_name,scanonly"`
	LastName  string `bun:"last_name,scanonly"`
}

// PlayerResponse is one row of the append-only response log.
type PlayerResponse struct {
	bun.BaseModel `bun:"table:player_responses,alias:pr"`

	ID            int64     `bun:"response_id,pk,autoincrement"`
	MatchPlayerID int64     `bun:"match_player_id,notnull"`
	ResponseType  string    `bun:"response_type,notnull"`
	Comment       *string   `bun:"comment"`
	ResponseTime  time.Time `bun:"response_time,nullzero,notnull,default:current_timestamp"`
}

// UserMatch is a match joined with one participant's roster status.
type UserMatch struct {
	Match `bun:",extend"`

	PlayerStatus string `bun:"player_status,scanonly"`
}
