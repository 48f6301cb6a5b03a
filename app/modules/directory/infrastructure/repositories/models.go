package directorydb

import (
	"time"

	"github.com/uptrace/bun"
)

// User mirrors the identity service's users table.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"user_id,pk,autoincrement"`
	Username      string    `bun:"username,notnull,unique"`
	Email         string    `bun:"email,notnull,unique"`
	FirstName     string    `bun:"first_name,notnull,default:''"`
	LastName      string    `bun:"last_name,notnull,default:''"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Sport is a row of the sports catalog.
type Sport struct {
	bun.BaseModel `bun:"table:sports,alias:s"`
	ID            int64     `bun:"sport_id,pk,autoincrement"`
	Name          string    `bun:"name,notnull,unique"`
	Description   *string   `bun:"description"`
	MinPlayers    *int      `bun:"min_players"`
	MaxPlayers    *int      `bun:"max_players"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// SkillLevel is a row of the skill level catalog.
type SkillLevel struct {
	bun.BaseModel `bun:"table:skill_levels,alias:sl"`
	ID            int64     `bun:"skill_level_id,pk,autoincrement"`
	Name          string    `bun:"name,notnull,unique"`
	Description   *string   `bun:"description"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
