package directorydb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines read access to the user, sport and skill level catalogs.
type Repository interface {
	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, db bun.IDB, userID int64) (*User, error)

	// GetUsersByIDs returns the users among ids that exist.
	GetUsersByIDs(ctx context.Context, db bun.IDB, ids []int64) ([]User, error)

	// GetSport retrieves a sport by id.
	GetSport(ctx context.Context, db bun.IDB, sportID int64) (*Sport, error)

	// GetSkillLevel retrieves a skill level by id.
	GetSkillLevel(ctx context.Context, db bun.IDB, skillLevelID int64) (*SkillLevel, error)
}
