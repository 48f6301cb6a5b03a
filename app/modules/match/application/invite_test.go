package matchservice

import (
	"context"
	"testing"

	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestInvitePlayers(t *testing.T) {
	const matchID = int64(7)

	baseRoster := func() []matchdb.MatchPlayer {
		return rosterOf(matchID,
			player(10, "confirmed"),
			player(11, "confirmed"),
			player(12, "invited"),
		)
	}

	tests := []struct {
		name        string
		callerID    int64
		playerIDs   []int64
		matchFound  bool
		addErr      error
		wantKind    apperrors.Kind
		wantMessage string
		wantAdded   []int64
	}{
		{
			name: "creator invites new players only", callerID: 10, matchFound: true,
			playerIDs: []int64{12, 13, 14, 13},
			wantAdded: []int64{13, 14},
		},
		{
			name: "confirmed co-player may invite", callerID: 11, matchFound: true,
			playerIDs: []int64{13},
			wantAdded: []int64{13},
		},
		{
			name: "empty list", callerID: 10, matchFound: true,
			wantKind: apperrors.KindValidation, wantMessage: "Player IDs are required",
		},
		{
			name: "missing match", callerID: 10, playerIDs: []int64{13},
			wantKind: apperrors.KindNotFound, wantMessage: "Match not found",
		},
		{
			name: "invited player cannot invite", callerID: 12, matchFound: true, playerIDs: []int64{13},
			wantKind: apperrors.KindForbidden, wantMessage: "Not authorized to invite players to this match",
		},
		{
			name: "stranger cannot invite", callerID: 99, matchFound: true, playerIDs: []int64{13},
			wantKind: apperrors.KindForbidden, wantMessage: "Not authorized to invite players to this match",
		},
		{
			name: "everyone already on roster", callerID: 10, matchFound: true, playerIDs: []int64{10, 11, 12},
			wantKind: apperrors.KindValidation, wantMessage: "All players are already invited to this match",
		},
		{
			name: "unknown user", callerID: 10, matchFound: true, playerIDs: []int64{13, 404},
			wantKind: apperrors.KindNotFound, wantMessage: "One or more players were not found",
		},
		{
			name: "concurrent duplicate insert", callerID: 10, matchFound: true, playerIDs: []int64{13},
			addErr:   matchdb.ErrDuplicatePlayer,
			wantKind: apperrors.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeMatchRepo()
			roster := baseRoster()
			repo.GetMatchForUpdateFunc = func(ctx context.Context, db bun.IDB, id int64) (*matchdb.Match, error) {
				if !tt.matchFound {
					return nil, matchdb.ErrNotFound
				}
				return storedMatch(id, 10), nil
			}
			repo.GetPlayerFunc = func(ctx context.Context, db bun.IDB, id, userID int64) (*matchdb.MatchPlayer, error) {
				for i := range roster {
					if roster[i].UserID == userID {
						return &roster[i], nil
					}
				}
				return nil, matchdb.ErrNotFound
			}
			repo.GetPlayersFunc = func(ctx context.Context, db bun.IDB, id int64) ([]matchdb.MatchPlayer, error) {
				return roster, nil
			}
			var added []int64
			repo.AddPlayersFunc = func(ctx context.Context, db bun.IDB, players []matchdb.MatchPlayer) error {
				if tt.addErr != nil {
					return tt.addErr
				}
				for _, p := range players {
					assert.Equal(t, "invited", p.Status)
					added = append(added, p.UserID)
				}
				return nil
			}

			notifier := &FakeNotifier{}
			svc := newTestService(repo, NewFakeDirectory().AddUsers(10, 11, 12, 13, 14), notifier)

			err := svc.InvitePlayers(context.Background(), matchID, tt.callerID, tt.playerIDs)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, err.Error())
				}
				assert.Empty(t, notifier.Requests())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)

			var notified []int64
			for _, r := range notifier.ByType(notificationevents.TypeMatchInvitation) {
				notified = append(notified, r.UserID)
				assert.Equal(t, "You've been invited to play Tennis on Jun 1, 2025 at Central Park", r.Message)
			}
			assert.Equal(t, tt.wantAdded, notified)
		})
	}
}
