package matchservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
)

// AutoCancelExpired cancels every pending auto-cancel match whose
// confirmation deadline passed before now while under-subscribed. Each match
// is canceled in its own transaction through the update path; a failure is
// logged and the sweep moves on.
func (s *MatchService) AutoCancelExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := withTelemetry(s, ctx, "AutoCancelExpired", now.UTC().Format(time.RFC3339), func(ctx context.Context) (results.OperationResult[int, error], error) {
		ids, err := s.repo.ListExpiredUndersubscribed(ctx, nil, now)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}

		canceled := 0
		for _, id := range ids {
			if ctx.Err() != nil {
				break
			}
			ok, err := s.autoCancelOne(ctx, id, now)
			if err != nil {
				s.logger.ErrorContext(ctx, "Failed to auto-cancel match",
					slog.Int64("match_id", id),
					slog.String("error", err.Error()),
				)
				continue
			}
			if ok {
				canceled++
			}
		}

		if canceled > 0 {
			s.metrics.RecordMatchesAutoCanceled(ctx, canceled)
		}
		return results.SuccessResult[int, error](canceled), nil
	})
	return unwrap(result, err)
}

func (s *MatchService) autoCancelOne(ctx context.Context, matchID int64, now time.Time) (bool, error) {
	result, err := commitThenNotify(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
		current, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
		if err != nil {
			if errors.Is(err, matchdb.ErrNotFound) {
				return results.OperationResult[mutation[*matchdomain.Match], error]{}, nil
			}
			return results.OperationResult[mutation[*matchdomain.Match], error]{}, err
		}
		if !stillExpired(current, now) {
			return results.OperationResult[mutation[*matchdomain.Match], error]{}, nil
		}

		status := matchdomain.StatusCanceled
		return s.applyUpdate(ctx, db, current, matchdomain.UpdateMatchRequest{Status: &status})
	})
	if err != nil {
		return false, err
	}
	if result.IsFailure() {
		return false, *result.Failure
	}
	return result.IsSuccess(), nil
}

// stillExpired re-checks the sweep predicate on the locked row.
func stillExpired(m *matchdb.Match, now time.Time) bool {
	return m.Status == string(matchdomain.StatusPendingConfirmation) &&
		m.AutoCancel &&
		m.ConfirmationDeadline.Before(now) &&
		m.ConfirmedPlayers < m.MinPlayers
}
