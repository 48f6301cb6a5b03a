package matchservice

import (
	"context"
	"errors"

	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
)

// DeleteMatch notifies the full roster that the match is canceled, then
// deletes it. Roster and response rows cascade.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID, callerID int64) error {
	result, err := withTelemetry(s, ctx, "DeleteMatch", idString(matchID), func(ctx context.Context) (results.OperationResult[mutation[struct{}], error], error) {
		prepared, err := commitThenNotify(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[struct{}], error], error) {
			return s.prepareDeleteLogic(ctx, db, matchID, callerID)
		})
		if err != nil || !prepared.IsSuccess() {
			return prepared, err
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[struct{}], error], error) {
			if err := s.repo.DeleteMatch(ctx, db, matchID); err != nil {
				if errors.Is(err, matchdb.ErrNotFound) {
					return results.FailureResult[mutation[struct{}], error](apperrors.NotFound(msgMatchNotFound)), nil
				}
				return results.OperationResult[mutation[struct{}], error]{}, err
			}
			return results.SuccessResult[mutation[struct{}], error](mutation[struct{}]{}), nil
		})
	})

	_, err = unwrap(result, err)
	return err
}

// prepareDeleteLogic authorizes the caller and snapshots the roster for the
// cancel fan-out.
func (s *MatchService) prepareDeleteLogic(ctx context.Context, db bun.IDB, matchID, callerID int64) (results.OperationResult[mutation[struct{}], error], error) {
	match, err := s.repo.GetMatch(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[mutation[struct{}], error](apperrors.NotFound(msgMatchNotFound)), nil
		}
		return results.OperationResult[mutation[struct{}], error]{}, err
	}
	if match.CreatedBy != callerID {
		return results.FailureResult[mutation[struct{}], error](apperrors.Forbidden(msgForbiddenDelete)), nil
	}

	players, err := s.repo.GetPlayers(ctx, db, matchID)
	if err != nil {
		return results.OperationResult[mutation[struct{}], error]{}, err
	}

	return results.SuccessResult[mutation[struct{}], error](mutation[struct{}]{
		notifications: fanOut(players, matchID, notificationevents.TypeMatchCanceled, canceledMessage(match.SportName, match.StartTime)),
	}), nil
}
