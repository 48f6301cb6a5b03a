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

// InvitePlayers adds the users not yet on the roster as invited and notifies
// only them. The caller must hold a confirmed entry.
func (s *MatchService) InvitePlayers(ctx context.Context, matchID, callerID int64, playerIDs []int64) error {
	result, err := withTelemetry(s, ctx, "InvitePlayers", idString(matchID), func(ctx context.Context) (results.OperationResult[mutation[[]int64], error], error) {
		if len(playerIDs) == 0 {
			return results.FailureResult[mutation[[]int64], error](apperrors.Validation(msgPlayerIDsRequired)), nil
		}
		return commitThenNotify(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[[]int64], error], error) {
			return s.invitePlayersLogic(ctx, db, matchID, callerID, playerIDs)
		})
	})

	_, err = unwrap(result, err)
	return err
}

func (s *MatchService) invitePlayersLogic(ctx context.Context, db bun.IDB, matchID, callerID int64, playerIDs []int64) (results.OperationResult[mutation[[]int64], error], error) {
	var empty results.OperationResult[mutation[[]int64], error]
	fail := func(err error) (results.OperationResult[mutation[[]int64], error], error) {
		return results.FailureResult[mutation[[]int64], error](err), nil
	}

	match, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return fail(apperrors.NotFound(msgMatchNotFound))
		}
		return empty, err
	}

	inviter, err := s.repo.GetPlayer(ctx, db, matchID, callerID)
	if err != nil && !errors.Is(err, matchdb.ErrNotFound) {
		return empty, err
	}
	if inviter == nil || inviter.Status != string(matchdomain.PlayerConfirmed) {
		return fail(apperrors.Forbidden(msgForbiddenInvite))
	}

	roster, err := s.repo.GetPlayers(ctx, db, matchID)
	if err != nil {
		return empty, err
	}
	onRoster := make(map[int64]struct{}, len(roster))
	for _, p := range roster {
		onRoster[p.UserID] = struct{}{}
	}

	newIDs, ok := uniqueInvitees(playerIDs, onRoster)
	if !ok {
		return fail(apperrors.Validation(msgInvalidPlayerID))
	}
	if len(newIDs) == 0 {
		return fail(apperrors.Validation(msgAllAlreadyInvited))
	}
	if err := s.checkUsersExist(ctx, newIDs); err != nil {
		return failureOrError[mutation[[]int64]](err)
	}

	entries := make([]matchdb.MatchPlayer, 0, len(newIDs))
	for _, userID := range newIDs {
		entries = append(entries, matchdb.MatchPlayer{
			MatchID: matchID,
			UserID:  userID,
			Status:  string(matchdomain.PlayerInvited),
		})
	}
	if err := s.repo.AddPlayers(ctx, db, entries); err != nil {
		if errors.Is(err, matchdb.ErrDuplicatePlayer) {
			return empty, apperrors.Conflict(msgRosterConflict)
		}
		return empty, err
	}

	sportName, err := s.sportName(ctx, match.SportID)
	if err != nil {
		return empty, err
	}
	message := invitationMessage(sportName, match.StartTime, match.Location)
	notifications := make([]notificationevents.RequestedPayloadV1, 0, len(newIDs))
	for _, userID := range newIDs {
		notifications = append(notifications, newRequest(userID, matchID, notificationevents.TypeMatchInvitation, message))
	}

	return results.SuccessResult[mutation[[]int64], error](mutation[[]int64]{
		value:         newIDs,
		notifications: notifications,
	}), nil
}
