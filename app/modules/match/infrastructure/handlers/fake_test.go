package matchhandlers

import (
	"context"
	"time"

	matchservice "github.com/funfirstplay/matchup/app/modules/match/application"
	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
)

type FakeMatchService struct {
	trace []string

	CreateMatchFunc         func(ctx context.Context, creatorID int64, req matchdomain.CreateMatchRequest) (*matchdomain.Match, error)
	GetMatchFunc            func(ctx context.Context, matchID int64) (*matchdomain.MatchDetails, error)
	ListMatchesFunc         func(ctx context.Context, filter matchdomain.MatchFilter) ([]matchdomain.Match, error)
	ListUserMatchesFunc     func(ctx context.Context, userID int64, status *matchdomain.PlayerStatus) ([]matchdomain.UserMatch, error)
	UpdateMatchFunc         func(ctx context.Context, matchID, callerID int64, req matchdomain.UpdateMatchRequest) (*matchdomain.Match, error)
	DeleteMatchFunc         func(ctx context.Context, matchID, callerID int64) error
	InvitePlayersFunc       func(ctx context.Context, matchID, callerID int64, playerIDs []int64) error
	RespondToInvitationFunc func(ctx context.Context, matchID, callerID int64, response matchdomain.ResponseType, comment *string) error
	GetResponseHistoryFunc  func(ctx context.Context, matchID, userID int64) ([]matchdomain.PlayerResponse, error)
	AutoCancelExpiredFunc   func(ctx context.Context, now time.Time) (int, error)
}

func (f *FakeMatchService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeMatchService) Trace() []string { return f.trace }

func (f *FakeMatchService) CreateMatch(ctx context.Context, creatorID int64, req matchdomain.CreateMatchRequest) (*matchdomain.Match, error) {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, creatorID, req)
	}
	return &matchdomain.Match{}, nil
}

func (f *FakeMatchService) GetMatch(ctx context.Context, matchID int64) (*matchdomain.MatchDetails, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, matchID)
	}
	return &matchdomain.MatchDetails{Match: &matchdomain.Match{ID: matchID}}, nil
}

func (f *FakeMatchService) ListMatches(ctx context.Context, filter matchdomain.MatchFilter) ([]matchdomain.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, filter)
	}
	return nil, nil
}

func (f *FakeMatchService) ListUserMatches(ctx context.Context, userID int64, status *matchdomain.PlayerStatus) ([]matchdomain.UserMatch, error) {
	f.record("ListUserMatches")
	if f.ListUserMatchesFunc != nil {
		return f.ListUserMatchesFunc(ctx, userID, status)
	}
	return nil, nil
}

func (f *FakeMatchService) UpdateMatch(ctx context.Context, matchID, callerID int64, req matchdomain.UpdateMatchRequest) (*matchdomain.Match, error) {
	f.record("UpdateMatch")
	if f.UpdateMatchFunc != nil {
		return f.UpdateMatchFunc(ctx, matchID, callerID, req)
	}
	return &matchdomain.Match{ID: matchID}, nil
}

func (f *FakeMatchService) DeleteMatch(ctx context.Context, matchID, callerID int64) error {
	f.record("DeleteMatch")
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, matchID, callerID)
	}
	return nil
}

func (f *FakeMatchService) InvitePlayers(ctx context.Context, matchID, callerID int64, playerIDs []int64) error {
	f.record("InvitePlayers")
	if f.InvitePlayersFunc != nil {
		return f.InvitePlayersFunc(ctx, matchID, callerID, playerIDs)
	}
	return nil
}

func (f *FakeMatchService) RespondToInvitation(ctx context.Context, matchID, callerID int64, response matchdomain.ResponseType, comment *string) error {
	f.record("RespondToInvitation")
	if f.RespondToInvitationFunc != nil {
		return f.RespondToInvitationFunc(ctx, matchID, callerID, response, comment)
	}
	return nil
}

func (f *FakeMatchService) GetResponseHistory(ctx context.Context, matchID, userID int64) ([]matchdomain.PlayerResponse, error) {
	f.record("GetResponseHistory")
	if f.GetResponseHistoryFunc != nil {
		return f.GetResponseHistoryFunc(ctx, matchID, userID)
	}
	return nil, nil
}

func (f *FakeMatchService) AutoCancelExpired(ctx context.Context, now time.Time) (int, error) {
	f.record("AutoCancelExpired")
	if f.AutoCancelExpiredFunc != nil {
		return f.AutoCancelExpiredFunc(ctx, now)
	}
	return 0, nil
}

var _ matchservice.Service = (*FakeMatchService)(nil)
