package matchservice

import (
	"context"
	"errors"
	"testing"

	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestDeleteMatch(t *testing.T) {
	tests := []struct {
		name        string
		callerID    int64
		found       bool
		deleteErr   error
		wantKind    apperrors.Kind
		wantNotify  int
		wantDeleted bool
	}{
		{name: "creator deletes after notifying roster", callerID: 10, found: true, wantNotify: 3, wantDeleted: true},
		{name: "non creator", callerID: 11, found: true, wantKind: apperrors.KindForbidden},
		{name: "missing match", callerID: 10, found: false, wantKind: apperrors.KindNotFound},
		{name: "concurrently deleted", callerID: 10, found: true, deleteErr: matchdb.ErrNotFound, wantKind: apperrors.KindNotFound, wantNotify: 3, wantDeleted: true},
		{name: "delete fails", callerID: 10, found: true, deleteErr: errors.New("boom"), wantKind: apperrors.KindInternal, wantNotify: 3, wantDeleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeMatchRepo()
			repo.GetMatchFunc = func(ctx context.Context, db bun.IDB, id int64) (*matchdb.Match, error) {
				if !tt.found {
					return nil, matchdb.ErrNotFound
				}
				return storedMatch(id, 10), nil
			}
			repo.GetPlayersFunc = func(ctx context.Context, db bun.IDB, id int64) ([]matchdb.MatchPlayer, error) {
				return rosterOf(id, player(10, "confirmed"), player(11, "invited"), player(12, "maybe")), nil
			}
			repo.DeleteMatchFunc = func(ctx context.Context, db bun.IDB, id int64) error {
				return tt.deleteErr
			}

			notifier := &FakeNotifier{}
			deletedBeforeNotify := false
			notifier.NotifyFn = func(ctx context.Context, r []notificationevents.RequestedPayloadV1) error {
				for _, step := range repo.Trace() {
					if step == "DeleteMatch" {
						deletedBeforeNotify = true
					}
				}
				return nil
			}

			svc := newTestService(repo, NewFakeDirectory(), notifier)
			err := svc.DeleteMatch(context.Background(), 7, tt.callerID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			} else {
				require.NoError(t, err)
			}
			assert.False(t, deletedBeforeNotify)
			assert.Len(t, notifier.ByType(notificationevents.TypeMatchCanceled), tt.wantNotify)
			assert.Equal(t, tt.wantDeleted, contains(repo.Trace(), "DeleteMatch"))
		})
	}
}

func contains(trace []string, step string) bool {
	for _, s := range trace {
		if s == step {
			return true
		}
	}
	return false
}
