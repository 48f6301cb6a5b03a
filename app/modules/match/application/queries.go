package matchservice

import (
	"context"
	"errors"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
)

// GetMatch returns a match with its roster.
func (s *MatchService) GetMatch(ctx context.Context, matchID int64) (*matchdomain.MatchDetails, error) {
	getMatchTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*matchdomain.MatchDetails, error], error) {
		return s.getMatchLogic(ctx, db, matchID)
	}

	result, err := withTelemetry(s, ctx, "GetMatch", idString(matchID), func(ctx context.Context) (results.OperationResult[*matchdomain.MatchDetails, error], error) {
		return runInTx(s, ctx, getMatchTx)
	})
	return unwrap(result, err)
}

func (s *MatchService) getMatchLogic(ctx context.Context, db bun.IDB, matchID int64) (results.OperationResult[*matchdomain.MatchDetails, error], error) {
	match, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[*matchdomain.MatchDetails, error](apperrors.NotFound(msgMatchNotFound)), nil
		}
		return results.OperationResult[*matchdomain.MatchDetails, error]{}, err
	}

	players, err := s.repo.GetPlayers(ctx, db, matchID)
	if err != nil {
		return results.OperationResult[*matchdomain.MatchDetails, error]{}, err
	}

	roster := make([]matchdomain.RosterPlayer, 0, len(players))
	for _, p := range players {
		roster = append(roster, toRosterPlayer(p))
	}

	return results.SuccessResult[*matchdomain.MatchDetails, error](&matchdomain.MatchDetails{
		Match:   toDomainMatch(match),
		Players: roster,
	}), nil
}

// ListMatches returns matches ordered by start time.
func (s *MatchService) ListMatches(ctx context.Context, filter matchdomain.MatchFilter) ([]matchdomain.Match, error) {
	result, err := withTelemetry(s, ctx, "ListMatches", "", func(ctx context.Context) (results.OperationResult[[]matchdomain.Match, error], error) {
		rows, err := s.repo.ListMatches(ctx, nil, filter.Normalize())
		if err != nil {
			return results.OperationResult[[]matchdomain.Match, error]{}, err
		}
		out := make([]matchdomain.Match, 0, len(rows))
		for i := range rows {
			out = append(out, *toDomainMatch(&rows[i]))
		}
		return results.SuccessResult[[]matchdomain.Match, error](out), nil
	})
	return unwrap(result, err)
}

// ListUserMatches returns the matches userID is on, optionally narrowed to
// one roster status.
func (s *MatchService) ListUserMatches(ctx context.Context, userID int64, status *matchdomain.PlayerStatus) ([]matchdomain.UserMatch, error) {
	result, err := withTelemetry(s, ctx, "ListUserMatches", idString(userID), func(ctx context.Context) (results.OperationResult[[]matchdomain.UserMatch, error], error) {
		if status != nil && !status.IsValid() {
			return results.FailureResult[[]matchdomain.UserMatch, error](apperrors.Validation("Invalid player status")), nil
		}
		rows, err := s.repo.ListUserMatches(ctx, nil, userID, status)
		if err != nil {
			return results.OperationResult[[]matchdomain.UserMatch, error]{}, err
		}
		out := make([]matchdomain.UserMatch, 0, len(rows))
		for i := range rows {
			out = append(out, matchdomain.UserMatch{
				Match:        *toDomainMatch(&rows[i].Match),
				PlayerStatus: matchdomain.PlayerStatus(rows[i].PlayerStatus),
			})
		}
		return results.SuccessResult[[]matchdomain.UserMatch, error](out), nil
	})
	return unwrap(result, err)
}

// GetResponseHistory returns one player's responses for a match, newest first.
func (s *MatchService) GetResponseHistory(ctx context.Context, matchID, userID int64) ([]matchdomain.PlayerResponse, error) {
	historyTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]matchdomain.PlayerResponse, error], error) {
		return s.responseHistoryLogic(ctx, db, matchID, userID)
	}

	result, err := withTelemetry(s, ctx, "GetResponseHistory", idString(matchID), func(ctx context.Context) (results.OperationResult[[]matchdomain.PlayerResponse, error], error) {
		return runInTx(s, ctx, historyTx)
	})
	return unwrap(result, err)
}

func (s *MatchService) responseHistoryLogic(ctx context.Context, db bun.IDB, matchID, userID int64) (results.OperationResult[[]matchdomain.PlayerResponse, error], error) {
	entry, err := s.repo.GetPlayer(ctx, db, matchID, userID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[[]matchdomain.PlayerResponse, error](apperrors.NotFound(msgPlayerNotInMatch)), nil
		}
		return results.OperationResult[[]matchdomain.PlayerResponse, error]{}, err
	}

	rows, err := s.repo.GetResponses(ctx, db, entry.ID)
	if err != nil {
		return results.OperationResult[[]matchdomain.PlayerResponse, error]{}, err
	}

	out := make([]matchdomain.PlayerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, matchdomain.PlayerResponse{
			ResponseID:    r.ID,
			MatchPlayerID: r.MatchPlayerID,
			ResponseType:  matchdomain.ResponseType(r.ResponseType),
			Comment:       r.Comment,
			ResponseTime:  r.ResponseTime,
		})
	}
	return results.SuccessResult[[]matchdomain.PlayerResponse, error](out), nil
}
