package matchservice

import (
	"context"
	"errors"
	"fmt"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
)

// RespondToInvitation records the caller's answer, moves their roster entry
// and notifies one other confirmed participant.
func (s *MatchService) RespondToInvitation(ctx context.Context, matchID, callerID int64, response matchdomain.ResponseType, comment *string) error {
	result, err := withTelemetry(s, ctx, "RespondToInvitation", idString(matchID), func(ctx context.Context) (results.OperationResult[mutation[struct{}], error], error) {
		if !response.IsValid() {
			return results.FailureResult[mutation[struct{}], error](apperrors.Validation(msgInvalidResponse)), nil
		}
		return commitThenNotify(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[struct{}], error], error) {
			return s.respondLogic(ctx, db, matchID, callerID, response, comment)
		})
	})

	_, err = unwrap(result, err)
	return err
}

func cannotRespond(status string) error {
	return apperrors.Validation(fmt.Sprintf(msgCannotRespondPattern, status))
}

func (s *MatchService) respondLogic(
	ctx context.Context,
	db bun.IDB,
	matchID, callerID int64,
	response matchdomain.ResponseType,
	comment *string,
) (results.OperationResult[mutation[struct{}], error], error) {
	var empty results.OperationResult[mutation[struct{}], error]
	fail := func(err error) (results.OperationResult[mutation[struct{}], error], error) {
		return results.FailureResult[mutation[struct{}], error](err), nil
	}

	match, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return fail(apperrors.NotFound(msgMatchNotFound))
		}
		return empty, err
	}

	entry, err := s.repo.GetPlayer(ctx, db, matchID, callerID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return fail(apperrors.NotFound(msgNotInvited))
		}
		return empty, err
	}

	observed := matchdomain.PlayerStatus(entry.Status)
	if !observed.CanRespond() {
		return fail(cannotRespond(entry.Status))
	}

	target := response.TargetStatus()
	if err := s.repo.UpdatePlayerStatus(ctx, db, entry.ID, observed, target, s.clock.Now()); err != nil {
		if !errors.Is(err, matchdb.ErrNoRowsAffected) {
			return empty, err
		}
		// Another response won the compare-and-set.
		latest, rerr := s.repo.GetPlayer(ctx, db, matchID, callerID)
		if rerr != nil {
			return empty, rerr
		}
		if !matchdomain.PlayerStatus(latest.Status).CanRespond() {
			return fail(cannotRespond(latest.Status))
		}
		return fail(apperrors.Conflict(msgConcurrentResponse))
	}

	if target == matchdomain.PlayerConfirmed {
		if err := s.repo.IncrementConfirmedPlayers(ctx, db, matchID); err != nil {
			return empty, err
		}
	}

	if err := s.repo.RecordResponse(ctx, db, &matchdb.PlayerResponse{
		MatchPlayerID: entry.ID,
		ResponseType:  string(response),
		Comment:       comment,
	}); err != nil {
		return empty, err
	}

	players, err := s.repo.GetPlayers(ctx, db, matchID)
	if err != nil {
		return empty, err
	}

	var notifications []notificationevents.RequestedPayloadV1
	for _, p := range players {
		if p.UserID == callerID || p.Status != string(matchdomain.PlayerConfirmed) {
			continue
		}
		sportName, err := s.sportName(ctx, match.SportID)
		if err != nil {
			return empty, err
		}
		notifications = append(notifications, newRequest(
			p.UserID,
			matchID,
			notificationevents.TypeInvitationResponse,
			responseMessage(*entry, response, sportName),
		))
		break
	}

	return results.SuccessResult[mutation[struct{}], error](mutation[struct{}]{notifications: notifications}), nil
}
