package matchservice

import (
	"context"
	"time"

	directorydomain "github.com/funfirstplay/matchup/app/modules/directory/domain"
	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
)

// Service defines the match lifecycle operations.
type Service interface {
	CreateMatch(ctx context.Context, creatorID int64, req matchdomain.CreateMatchRequest) (*matchdomain.Match, error)
	GetMatch(ctx context.Context, matchID int64) (*matchdomain.MatchDetails, error)
	ListMatches(ctx context.Context, filter matchdomain.MatchFilter) ([]matchdomain.Match, error)
	ListUserMatches(ctx context.Context, userID int64, status *matchdomain.PlayerStatus) ([]matchdomain.UserMatch, error)
	UpdateMatch(ctx context.Context, matchID, callerID int64, req matchdomain.UpdateMatchRequest) (*matchdomain.Match, error)
	DeleteMatch(ctx context.Context, matchID, callerID int64) error
	InvitePlayers(ctx context.Context, matchID, callerID int64, playerIDs []int64) error
	RespondToInvitation(ctx context.Context, matchID, callerID int64, response matchdomain.ResponseType, comment *string) error
	GetResponseHistory(ctx context.Context, matchID, userID int64) ([]matchdomain.PlayerResponse, error)
	// AutoCancelExpired cancels pending matches that missed their
	// confirmation deadline and returns how many were canceled.
	AutoCancelExpired(ctx context.Context, now time.Time) (int, error)
}

// Directory resolves the users, sports and skill levels a match refers to.
type Directory interface {
	GetUser(ctx context.Context, userID int64) (*directorydomain.User, error)
	MissingUsers(ctx context.Context, userIDs []int64) ([]int64, error)
	GetSport(ctx context.Context, sportID int64) (*directorydomain.Sport, error)
	GetSkillLevel(ctx context.Context, skillLevelID int64) (*directorydomain.SkillLevel, error)
}

// NotificationSink accepts notification requests. Delivery is its concern.
type NotificationSink interface {
	Notify(ctx context.Context, requests []notificationevents.RequestedPayloadV1) error
}

// Clock abstracts the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }
