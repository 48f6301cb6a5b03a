package matchservice

import (
	"context"
	"errors"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
)

// UpdateMatch applies a partial update on behalf of the creator.
func (s *MatchService) UpdateMatch(ctx context.Context, matchID, callerID int64, req matchdomain.UpdateMatchRequest) (*matchdomain.Match, error) {
	result, err := withTelemetry(s, ctx, "UpdateMatch", idString(matchID), func(ctx context.Context) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
		return commitThenNotify(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
			return s.updateMatchLogic(ctx, db, matchID, callerID, req)
		})
	})

	m, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	return m.value, nil
}

func (s *MatchService) updateMatchLogic(ctx context.Context, db bun.IDB, matchID, callerID int64, req matchdomain.UpdateMatchRequest) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
	current, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[mutation[*matchdomain.Match], error](apperrors.NotFound(msgMatchNotFound)), nil
		}
		return results.OperationResult[mutation[*matchdomain.Match], error]{}, err
	}
	if current.CreatedBy != callerID {
		return results.FailureResult[mutation[*matchdomain.Match], error](apperrors.Forbidden(msgForbiddenUpdate)), nil
	}

	return s.applyUpdate(ctx, db, current, req)
}

// applyUpdate validates req against the locked row, writes it and builds the
// cancel and schedule-change fan-outs. It is shared by UpdateMatch and the
// deadline sweep.
func (s *MatchService) applyUpdate(ctx context.Context, db bun.IDB, current *matchdb.Match, req matchdomain.UpdateMatchRequest) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
	var empty results.OperationResult[mutation[*matchdomain.Match], error]
	fail := func(err error) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
		return results.FailureResult[mutation[*matchdomain.Match], error](err), nil
	}

	before := *current
	next := *current

	if req.StartTime != nil {
		t, err := s.parseTime(*req.StartTime)
		if err != nil {
			return fail(err)
		}
		next.StartTime = t
	}
	if req.EndTime != nil {
		t, err := s.parseTime(*req.EndTime)
		if err != nil {
			return fail(err)
		}
		next.EndTime = t
	}
	if req.ConfirmationDeadline != nil {
		t, err := s.parseTime(*req.ConfirmationDeadline)
		if err != nil {
			return fail(err)
		}
		next.ConfirmationDeadline = t
	}
	if req.StartTime != nil || req.EndTime != nil || req.ConfirmationDeadline != nil {
		if err := checkSchedule(next.StartTime, next.EndTime, next.ConfirmationDeadline); err != nil {
			return fail(err)
		}
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return fail(apperrors.Validation(msgInvalidStatus))
		}
		next.Status = string(*req.Status)
	}
	if req.MinPlayers != nil {
		if *req.MinPlayers < 1 {
			return fail(apperrors.Validation(msgInvalidMinPlayers))
		}
		next.MinPlayers = *req.MinPlayers
	}
	if req.RequiredSkillLevel != nil {
		if err := s.checkSkillLevel(ctx, req.RequiredSkillLevel); err != nil {
			if isDomainFailure(err) {
				return fail(err)
			}
			return empty, err
		}
		next.RequiredSkillLevel = req.RequiredSkillLevel
	}
	if req.Location != nil {
		next.Location = req.Location
	}
	if req.AutoCancel != nil {
		next.AutoCancel = *req.AutoCancel
	}

	if err := s.repo.UpdateMatch(ctx, db, &next); err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return fail(apperrors.NotFound(msgMatchNotFound))
		}
		return empty, err
	}

	canceled := next.Status == string(matchdomain.StatusCanceled) && before.Status != string(matchdomain.StatusCanceled)
	rescheduled := !next.StartTime.Equal(before.StartTime) ||
		!next.EndTime.Equal(before.EndTime) ||
		!sameLocation(next.Location, before.Location)

	stored, err := s.repo.GetMatch(ctx, db, current.ID)
	if err != nil {
		return empty, err
	}

	var notifications []notificationevents.RequestedPayloadV1
	if canceled || rescheduled {
		players, err := s.repo.GetPlayers(ctx, db, current.ID)
		if err != nil {
			return empty, err
		}
		if canceled {
			notifications = append(notifications,
				fanOut(players, current.ID, notificationevents.TypeMatchCanceled, canceledMessage(stored.SportName, before.StartTime))...)
		}
		if rescheduled {
			notifications = append(notifications,
				fanOut(players, current.ID, notificationevents.TypeMatchUpdated, updatedMessage(stored.SportName))...)
		}
	}

	return results.SuccessResult[mutation[*matchdomain.Match], error](mutation[*matchdomain.Match]{
		value:         toDomainMatch(stored),
		notifications: notifications,
	}), nil
}

func sameLocation(a, b *string) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return *a == *b
	}
}
