package matchdb

import (
	"context"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	"github.com/uptrace/bun"
)

// Repository defines persistence for matches, rosters and the response log.
// Every method accepts an optional bun.IDB so callers can run it inside a
// transaction; nil falls back to the repository's connection.
type Repository interface {
	// --- Matches ---

	CreateMatch(ctx context.Context, db bun.IDB, match *Match) error
	// GetMatch returns the match joined with its sport and skill level names.
	GetMatch(ctx context.Context, db bun.IDB, matchID int64) (*Match, error)
	// GetMatchForUpdate locks the match row for the rest of the transaction.
	GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID int64) (*Match, error)
	UpdateMatch(ctx context.Context, db bun.IDB, match *Match) error
	DeleteMatch(ctx context.Context, db bun.IDB, matchID int64) error
	ListMatches(ctx context.Context, db bun.IDB, filter matchdomain.MatchFilter) ([]Match, error)
	ListUserMatches(ctx context.Context, db bun.IDB, userID int64, status *matchdomain.PlayerStatus) ([]UserMatch, error)
	// ListExpiredUndersubscribed returns ids of pending auto-cancel matches
	// whose deadline passed before now with fewer confirmed than required players.
	ListExpiredUndersubscribed(ctx context.Context, db bun.IDB, now time.Time) ([]int64, error)
	IncrementConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64) error
	// DecrementConfirmedPlayers floors the counter at zero.
	DecrementConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64) error

	// --- Roster ---

	AddPlayer(ctx context.Context, db bun.IDB, player *MatchPlayer) error
	// AddPlayers inserts all entries in one statement.
	AddPlayers(ctx context.Context, db bun.IDB, players []MatchPlayer) error
	GetPlayer(ctx context.Context, db bun.IDB, matchID, userID int64) (*MatchPlayer, error)
	// GetPlayers returns the roster joined with user names, oldest entry first.
	GetPlayers(ctx context.Context, db bun.IDB, matchID int64) ([]MatchPlayer, error)
	// UpdatePlayerStatus moves an entry from expected to status. It returns
	// ErrNoRowsAffected when the entry no longer holds expected.
	UpdatePlayerStatus(ctx context.Context, db bun.IDB, matchPlayerID int64, expected, status matchdomain.PlayerStatus, respondedAt time.Time) error

	// --- Response log ---

	RecordResponse(ctx context.Context, db bun.IDB, response *PlayerResponse) error
	// GetResponses returns the log for one roster entry, newest first.
	GetResponses(ctx context.Context, db bun.IDB, matchPlayerID int64) ([]PlayerResponse, error)
}
