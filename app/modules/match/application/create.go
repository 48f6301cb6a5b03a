package matchservice

import (
	"context"
	"errors"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
)

// createInput is a validated CreateMatchRequest.
type createInput struct {
	sportID    int64
	sportName  string
	start      time.Time
	end        time.Time
	deadline   time.Time
	location   *string
	skillLevel *int64
	minPlayers int
	autoCancel bool
	invitees   []int64
}

// CreateMatch creates a match with the creator confirmed and the invitees
// invited, then notifies each invitee.
func (s *MatchService) CreateMatch(ctx context.Context, creatorID int64, req matchdomain.CreateMatchRequest) (*matchdomain.Match, error) {
	result, err := withTelemetry(s, ctx, "CreateMatch", idString(creatorID), func(ctx context.Context) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
		in, err := s.prepareCreate(ctx, creatorID, req)
		if err != nil {
			return failureOrError[mutation[*matchdomain.Match]](err)
		}
		return commitThenNotify(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
			return s.createMatchLogic(ctx, db, creatorID, in)
		})
	})

	m, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	return m.value, nil
}

// prepareCreate validates the request and its references without touching
// the match tables.
func (s *MatchService) prepareCreate(ctx context.Context, creatorID int64, req matchdomain.CreateMatchRequest) (createInput, error) {
	if req.SportID == nil || req.StartTime == "" || req.EndTime == "" || req.MinPlayers == nil || req.ConfirmationDeadline == "" {
		return createInput{}, apperrors.Validation(msgMissingFields)
	}

	start, err := s.parseTime(req.StartTime)
	if err != nil {
		return createInput{}, err
	}
	end, err := s.parseTime(req.EndTime)
	if err != nil {
		return createInput{}, err
	}
	deadline, err := s.parseTime(req.ConfirmationDeadline)
	if err != nil {
		return createInput{}, err
	}
	if err := checkSchedule(start, end, deadline); err != nil {
		return createInput{}, err
	}
	if *req.MinPlayers < 1 {
		return createInput{}, apperrors.Validation(msgInvalidMinPlayers)
	}

	invitees, ok := uniqueInvitees(req.PlayerIDs, map[int64]struct{}{creatorID: {}})
	if !ok {
		return createInput{}, apperrors.Validation(msgInvalidPlayerID)
	}

	sportName, err := s.checkSport(ctx, *req.SportID)
	if err != nil {
		return createInput{}, err
	}
	if err := s.checkSkillLevel(ctx, req.RequiredSkillLevel); err != nil {
		return createInput{}, err
	}
	if len(invitees) > 0 {
		if err := s.checkUsersExist(ctx, invitees); err != nil {
			return createInput{}, err
		}
	}

	autoCancel := true
	if req.AutoCancel != nil {
		autoCancel = *req.AutoCancel
	}

	return createInput{
		sportID:    *req.SportID,
		sportName:  sportName,
		start:      start,
		end:        end,
		deadline:   deadline,
		location:   req.Location,
		skillLevel: req.RequiredSkillLevel,
		minPlayers: *req.MinPlayers,
		autoCancel: autoCancel,
		invitees:   invitees,
	}, nil
}

// createMatchLogic inserts the match, the creator's entry, the aggregate
// increment and the invitees, in that order.
func (s *MatchService) createMatchLogic(ctx context.Context, db bun.IDB, creatorID int64, in createInput) (results.OperationResult[mutation[*matchdomain.Match], error], error) {
	var empty results.OperationResult[mutation[*matchdomain.Match], error]
	now := s.clock.Now()

	row := &matchdb.Match{
		SportID:              in.sportID,
		StartTime:            in.start,
		EndTime:              in.end,
		Location:             in.location,
		Status:               string(matchdomain.StatusPendingConfirmation),
		RequiredSkillLevel:   in.skillLevel,
		MinPlayers:           in.minPlayers,
		ConfirmedPlayers:     0,
		ConfirmationDeadline: in.deadline,
		AutoCancel:           in.autoCancel,
		CreatedBy:            creatorID,
	}
	if err := s.repo.CreateMatch(ctx, db, row); err != nil {
		return empty, err
	}

	creator := &matchdb.MatchPlayer{
		MatchID:     row.ID,
		UserID:      creatorID,
		Status:      string(matchdomain.PlayerConfirmed),
		RespondedAt: &now,
	}
	if err := s.repo.AddPlayer(ctx, db, creator); err != nil {
		return empty, err
	}
	if err := s.repo.IncrementConfirmedPlayers(ctx, db, row.ID); err != nil {
		return empty, err
	}

	if len(in.invitees) > 0 {
		entries := make([]matchdb.MatchPlayer, 0, len(in.invitees))
		for _, userID := range in.invitees {
			entries = append(entries, matchdb.MatchPlayer{
				MatchID: row.ID,
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
	}

	stored, err := s.repo.GetMatch(ctx, db, row.ID)
	if err != nil {
		return empty, err
	}

	message := invitationMessage(in.sportName, in.start, in.location)
	notifications := make([]notificationevents.RequestedPayloadV1, 0, len(in.invitees))
	for _, userID := range in.invitees {
		notifications = append(notifications, newRequest(userID, row.ID, notificationevents.TypeMatchInvitation, message))
	}

	return results.SuccessResult[mutation[*matchdomain.Match], error](mutation[*matchdomain.Match]{
		value:         toDomainMatch(stored),
		notifications: notifications,
	}), nil
}
