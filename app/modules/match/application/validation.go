package matchservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	directorydomain "github.com/funfirstplay/matchup/app/modules/directory/domain"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
)

const (
	msgMissingFields        = "Missing required fields"
	msgInvalidDate          = "Invalid date format"
	msgEndBeforeStart       = "End time must be after start time"
	msgDeadlineAfterStart   = "Confirmation deadline must be before match start time"
	msgInvalidMinPlayers    = "Minimum players must be at least 1"
	msgInvalidStatus        = "Invalid match status"
	msgInvalidResponse      = "Valid response is required (accepted, declined, or maybe)"
	msgPlayerIDsRequired    = "Player IDs are required"
	msgInvalidPlayerID      = "Player IDs must be positive integers"
	msgAllAlreadyInvited    = "All players are already invited to this match"
	msgMatchNotFound        = "Match not found"
	msgSportNotFound        = "Sport not found"
	msgSkillLevelNotFound   = "Skill level not found"
	msgUsersNotFound        = "One or more players were not found"
	msgNotInvited           = "You are not invited to this match"
	msgPlayerNotInMatch     = "Player is not part of this match"
	msgForbiddenUpdate      = "Not authorized to update this match"
	msgForbiddenDelete      = "Not authorized to delete this match"
	msgForbiddenInvite      = "Not authorized to invite players to this match"
	msgRosterConflict       = "One or more players were added to this match concurrently"
	msgConcurrentResponse   = "Invitation was answered concurrently, please retry"
	msgCannotRespondPattern = "Cannot respond to invitation with current status: %s"
)

// parseTime resolves a client supplied time relative to now.
func (s *MatchService) parseTime(raw string) (time.Time, error) {
	t, err := s.times.Parse(raw, s.clock.Now())
	if err != nil {
		return time.Time{}, apperrors.Validation(msgInvalidDate)
	}
	return t, nil
}

// checkSchedule enforces end > start and deadline < start.
func checkSchedule(start, end, deadline time.Time) error {
	if !end.After(start) {
		return apperrors.Validation(msgEndBeforeStart)
	}
	if !deadline.Before(start) {
		return apperrors.Validation(msgDeadlineAfterStart)
	}
	return nil
}

// checkSport returns the sport name or a NotFound failure.
func (s *MatchService) checkSport(ctx context.Context, sportID int64) (string, error) {
	sport, err := s.directory.GetSport(ctx, sportID)
	if err != nil {
		if errors.Is(err, directorydomain.ErrSportNotFound) {
			return "", apperrors.NotFound(msgSportNotFound)
		}
		return "", fmt.Errorf("failed to look up sport: %w", err)
	}
	return sport.Name, nil
}

func (s *MatchService) checkSkillLevel(ctx context.Context, skillLevelID *int64) error {
	if skillLevelID == nil {
		return nil
	}
	if _, err := s.directory.GetSkillLevel(ctx, *skillLevelID); err != nil {
		if errors.Is(err, directorydomain.ErrSkillLevelNotFound) {
			return apperrors.NotFound(msgSkillLevelNotFound)
		}
		return fmt.Errorf("failed to look up skill level: %w", err)
	}
	return nil
}

// checkUsersExist fails with NotFound listing the unknown ids.
func (s *MatchService) checkUsersExist(ctx context.Context, userIDs []int64) error {
	missing, err := s.directory.MissingUsers(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("failed to look up players: %w", err)
	}
	if len(missing) > 0 {
		return apperrors.NotFound(msgUsersNotFound).WithDetails(map[string]any{"user_ids": missing})
	}
	return nil
}

// uniqueInvitees deduplicates ids in input order and drops exclude.
// It reports false when any id is not positive.
func uniqueInvitees(ids []int64, exclude map[int64]struct{}) ([]int64, bool) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, false
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, true
}

// isDomainFailure reports whether err is a classified client-facing error
// that should travel as a failure result instead of an infrastructure error.
func isDomainFailure(err error) bool {
	return apperrors.KindOf(err) != apperrors.KindInternal
}
