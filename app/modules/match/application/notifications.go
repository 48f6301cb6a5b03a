package matchservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
)

// dateLayout renders match dates in notification messages.
const dateLayout = "Jan 2, 2006"

func invitationMessage(sportName string, start time.Time, location *string) string {
	where := "TBD"
	if location != nil && strings.TrimSpace(*location) != "" {
		where = *location
	}
	return fmt.Sprintf("You've been invited to play %s on %s at %s", sportName, start.Format(dateLayout), where)
}

func canceledMessage(sportName string, start time.Time) string {
	return fmt.Sprintf("The %s match on %s has been canceled.", sportName, start.Format(dateLayout))
}

func updatedMessage(sportName string) string {
	return fmt.Sprintf("The %s match details have been updated. Please check the new schedule.", sportName)
}

func responseMessage(responder matchdb.MatchPlayer, response matchdomain.ResponseType, sportName string) string {
	name := strings.TrimSpace(responder.FirstName + " " + responder.LastName)
	if name == "" {
		name = responder.Username
	}
	return fmt.Sprintf("%s has %s your invitation to the %s match.", name, response, sportName)
}

func newRequest(userID, matchID int64, kind notificationevents.Type, message string) notificationevents.RequestedPayloadV1 {
	id := matchID
	return notificationevents.RequestedPayloadV1{
		UserID:  userID,
		MatchID: &id,
		Type:    kind,
		Message: message,
		Channel: notificationevents.DefaultChannel,
	}
}

// fanOut builds one request per roster member.
func fanOut(players []matchdb.MatchPlayer, matchID int64, kind notificationevents.Type, message string) []notificationevents.RequestedPayloadV1 {
	out := make([]notificationevents.RequestedPayloadV1, 0, len(players))
	for _, p := range players {
		out = append(out, newRequest(p.UserID, matchID, kind, message))
	}
	return out
}

// sportName resolves the display name used in messages.
func (s *MatchService) sportName(ctx context.Context, sportID int64) (string, error) {
	sport, err := s.directory.GetSport(ctx, sportID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve sport %d: %w", sportID, err)
	}
	return sport.Name, nil
}

// dispatch hands requests to the sink grouped by type. Failures are logged
// and counted but never returned.
func (s *MatchService) dispatch(ctx context.Context, requests []notificationevents.RequestedPayloadV1) {
	if len(requests) == 0 || s.notifier == nil {
		return
	}

	var order []notificationevents.Type
	groups := make(map[notificationevents.Type][]notificationevents.RequestedPayloadV1)
	for _, req := range requests {
		if _, seen := groups[req.Type]; !seen {
			order = append(order, req.Type)
		}
		groups[req.Type] = append(groups[req.Type], req)
	}

	for _, kind := range order {
		batch := groups[kind]
		if err := s.notifier.Notify(ctx, batch); err != nil {
			s.logger.ErrorContext(ctx, "Failed to dispatch notifications",
				slog.String("type", string(kind)),
				slog.Int("count", len(batch)),
				slog.String("error", err.Error()),
			)
			s.metrics.RecordNotificationFailure(ctx, string(kind))
			continue
		}
		s.metrics.RecordNotificationsDispatched(ctx, string(kind), len(batch))
	}
}
