package directorydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a catalog row is not found.
var ErrNotFound = errors.New("directory entry not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new directory repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetUser(ctx context.Context, db bun.IDB, userID int64) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *Impl) GetUsersByIDs(ctx context.Context, db bun.IDB, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var users []User
	err := db.NewSelect().
		Model(&users).
		Where("u.user_id IN (?)", bun.In(ids)).
		Order("u.user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return users, nil
}

func (r *Impl) GetSport(ctx context.Context, db bun.IDB, sportID int64) (*Sport, error) {
	db = r.resolveDB(db)
	sport := new(Sport)
	err := db.NewSelect().
		Model(sport).
		Where("s.sport_id = ?", sportID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sport: %w", err)
	}
	return sport, nil
}

func (r *Impl) GetSkillLevel(ctx context.Context, db bun.IDB, skillLevelID int64) (*SkillLevel, error) {
	db = r.resolveDB(db)
	level := new(SkillLevel)
	err := db.NewSelect().
		Model(level).
		Where("sl.skill_level_id = ?", skillLevelID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get skill level: %w", err)
	}
	return level, nil
}
