package directoryservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	directorydomain "github.com/funfirstplay/matchup/app/modules/directory/domain"
	directorydb "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// SportCache is a read-through cache for sport lookups.
type SportCache interface {
	Get(ctx context.Context, sportID int64) (*directorydomain.Sport, error)
	Set(ctx context.Context, sport *directorydomain.Sport) error
}

// Directory answers user, sport and skill level lookups.
type Directory struct {
	repo   directorydb.Repository
	cache  SportCache
	logger *slog.Logger
	db     bun.IDB
}

// NewDirectory creates a new Directory.
func NewDirectory(repo directorydb.Repository, cache SportCache, logger *slog.Logger, db bun.IDB) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		repo:   repo,
		cache:  cache,
		logger: logger,
		db:     db,
	}
}

// GetUser returns the user or ErrUserNotFound.
func (d *Directory) GetUser(ctx context.Context, userID int64) (*directorydomain.User, error) {
	user, err := d.repo.GetUser(ctx, d.db, userID)
	if err != nil {
		if errors.Is(err, directorydb.ErrNotFound) {
			return nil, directorydomain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(user), nil
}

// MissingUsers returns the ids among userIDs that have no user, in input order.
func (d *Directory) MissingUsers(ctx context.Context, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	users, err := d.repo.GetUsersByIDs(ctx, d.db, userIDs)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]struct{}, len(users))
	for _, u := range users {
		found[u.ID] = struct{}{}
	}

	var missing []int64
	for _, id := range userIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// GetSport returns the sport or ErrSportNotFound. Cache failures fall back
// to the database.
func (d *Directory) GetSport(ctx context.Context, sportID int64) (*directorydomain.Sport, error) {
	if d.cache != nil {
		cached, err := d.cache.Get(ctx, sportID)
		if err != nil {
			d.logger.WarnContext(ctx, "Sport cache read failed",
				slog.Int64("sport_id", sportID),
				slog.String("error", err.Error()),
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	row, err := d.repo.GetSport(ctx, d.db, sportID)
	if err != nil {
		if errors.Is(err, directorydb.ErrNotFound) {
			return nil, directorydomain.ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to look up sport: %w", err)
	}

	sport := &directorydomain.Sport{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		MinPlayers:  row.MinPlayers,
		MaxPlayers:  row.MaxPlayers,
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, sport); err != nil {
			d.logger.WarnContext(ctx, "Sport cache write failed",
				slog.Int64("sport_id", sportID),
				slog.String("error", err.Error()),
			)
		}
	}
	return sport, nil
}

// GetSkillLevel returns the skill level or ErrSkillLevelNotFound.
func (d *Directory) GetSkillLevel(ctx context.Context, skillLevelID int64) (*directorydomain.SkillLevel, error) {
	row, err := d.repo.GetSkillLevel(ctx, d.db, skillLevelID)
	if err != nil {
		if errors.Is(err, directorydb.ErrNotFound) {
			return nil, directorydomain.ErrSkillLevelNotFound
		}
		return nil, fmt.Errorf("failed to look up skill level: %w", err)
	}
	return &directorydomain.SkillLevel{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
	}, nil
}

func toDomainUser(u *directorydb.User) *directorydomain.User {
	return &directorydomain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
