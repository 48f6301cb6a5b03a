package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a match or roster entry does not exist.
	ErrNotFound = errors.New("match record not found")
	// ErrNoRowsAffected is returned when a conditional UPDATE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrDuplicatePlayer is returned when a user is already on the roster.
	ErrDuplicatePlayer = errors.New("player already on roster")
)

const uniqueViolation = "23505"

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new match repository.
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

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}

// selectMatches starts a match query joined with the catalog names.
func selectMatches(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		ColumnExpr("m.*").
		ColumnExpr("s.name AS sport_name").
		ColumnExpr("sl.name AS skill_level_name").
		Join("JOIN sports AS s ON s.sport_id = m.sport_id").
		Join("LEFT JOIN skill_levels AS sl ON sl.skill_level_id = m.required_skill_level")
}

// CreateMatch inserts the match and fills its generated columns.
func (r *Impl) CreateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(match).
		ExcludeColumn("match_id").
		Returning("match_id, created_at, updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, matchID int64) (*Match, error) {
	db = r.resolveDB(db)
	match := new(Match)
	err := selectMatches(db, match).
		Where("m.match_id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (r *Impl) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID int64) (*Match, error) {
	db = r.resolveDB(db)
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Where("m.match_id = ?", matchID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock match: %w", err)
	}
	return match, nil
}

// UpdateMatch writes the client-editable columns. confirmed_players is
// never written here.
func (r *Impl) UpdateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	match.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(match).
		Column(
			"start_time",
			"end_time",
			"location",
			"status",
			"required_skill_level",
			"min_players",
			"confirmation_deadline",
			"auto_cancel",
			"updated_at",
		).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMatch removes the match; roster and responses cascade.
func (r *Impl) DeleteMatch(ctx context.Context, db bun.IDB, matchID int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Match)(nil)).
		Where("match_id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListMatches(ctx context.Context, db bun.IDB, filter matchdomain.MatchFilter) ([]Match, error) {
	db = r.resolveDB(db)
	filter = filter.Normalize()

	var matches []Match
	q := selectMatches(db, &matches)
	if filter.SportID != nil {
		q = q.Where("m.sport_id = ?", *filter.SportID)
	}
	if filter.Status != nil {
		q = q.Where("m.status = ?", string(*filter.Status))
	}
	if filter.FromDate != nil {
		q = q.Where("m.start_time >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("m.start_time <= ?", *filter.ToDate)
	}
	if filter.SkillLevelID != nil {
		q = q.Where("m.required_skill_level = ?", *filter.SkillLevelID)
	}

	err := q.Order("m.start_time ASC", "m.match_id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (r *Impl) ListUserMatches(ctx context.Context, db bun.IDB, userID int64, status *matchdomain.PlayerStatus) ([]UserMatch, error) {
	db = r.resolveDB(db)

	var matches []UserMatch
	q := selectMatches(db, &matches).
		ColumnExpr("mp.status AS player_status").
		Join("JOIN match_players AS mp ON mp.match_id = m.match_id").
		Where("mp.user_id = ?", userID)
	if status != nil {
		q = q.Where("mp.status = ?", string(*status))
	}

	if err := q.Order("m.start_time ASC", "m.match_id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list user matches: %w", err)
	}
	return matches, nil
}

func (r *Impl) ListExpiredUndersubscribed(ctx context.Context, db bun.IDB, now time.Time) ([]int64, error) {
	db = r.resolveDB(db)
	var ids []int64
	err := db.NewSelect().
		Model((*Match)(nil)).
		Column("m.match_id").
		Where("m.status = ?", string(matchdomain.StatusPendingConfirmation)).
		Where("m.auto_cancel = TRUE").
		Where("m.confirmation_deadline < ?", now).
		Where("m.confirmed_players < m.min_players").
		Order("m.confirmation_deadline ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired matches: %w", err)
	}
	return ids, nil
}

func (r *Impl) IncrementConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64) error {
	return r.adjustConfirmedPlayers(ctx, db, matchID, "confirmed_players = confirmed_players + 1")
}

func (r *Impl) DecrementConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64) error {
	return r.adjustConfirmedPlayers(ctx, db, matchID, "confirmed_players = GREATEST(0, confirmed_players - 1)")
}

func (r *Impl) adjustConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64, expr string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set(expr).
		Set("updated_at = ?", time.Now().UTC()).
		Where("match_id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to adjust confirmed players: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
