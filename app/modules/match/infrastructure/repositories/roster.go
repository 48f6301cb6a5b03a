package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	"github.com/uptrace/bun"
)

func (r *Impl) AddPlayer(ctx context.Context, db bun.IDB, player *MatchPlayer) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(player).
		ExcludeColumn("match_player_id").
		Returning("match_player_id, created_at").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlayer
		}
		return fmt.Errorf("failed to add player: %w", err)
	}
	return nil
}

func (r *Impl) AddPlayers(ctx context.Context, db bun.IDB, players []MatchPlayer) error {
	if len(players) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&players).
		ExcludeColumn("match_player_id").
		Returning("match_player_id, created_at").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlayer
		}
		return fmt.Errorf("failed to add players: %w", err)
	}
	return nil
}

// selectPlayers starts a roster query joined with the user's names.
func selectPlayers(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		ColumnExpr("mp.*").
		ColumnExpr("u.username, u.first_name, u.last_name").
		Join("JOIN users AS u ON u.user_id = mp.user_id")
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, matchID, userID int64) (*MatchPlayer, error) {
	db = r.resolveDB(db)
	player := new(MatchPlayer)
	err := selectPlayers(db, player).
		Where("mp.match_id = ?", matchID).
		Where("mp.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	return player, nil
}

func (r *Impl) GetPlayers(ctx context.Context, db bun.IDB, matchID int64) ([]MatchPlayer, error) {
	db = r.resolveDB(db)
	var players []MatchPlayer
	err := selectPlayers(db, &players).
		Where("mp.match_id = ?", matchID).
		Order("mp.match_player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	return players, nil
}

func (r *Impl) UpdatePlayerStatus(
	ctx context.Context,
	db bun.IDB,
	matchPlayerID int64,
	expected, status matchdomain.PlayerStatus,
	respondedAt time.Time,
) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*MatchPlayer)(nil)).
		Set("status = ?", string(status)).
		Set("responded_at = ?", respondedAt).
		Where("match_player_id = ?", matchPlayerID).
		Where("status = ?", string(expected)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update roster status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) RecordResponse(ctx context.Context, db bun.IDB, response *PlayerResponse) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(response).
		ExcludeColumn("response_id").
		Returning("response_id, response_time").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record response: %w", err)
	}
	return nil
}

func (r *Impl) GetResponses(ctx context.Context, db bun.IDB, matchPlayerID int64) ([]PlayerResponse, error) {
	db = r.resolveDB(db)
	var responses []PlayerResponse
	err := db.NewSelect().
		Model(&responses).
		Where("pr.match_player_id = ?", matchPlayerID).
		Order("pr.response_time DESC", "pr.response_id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	return responses, nil
}
