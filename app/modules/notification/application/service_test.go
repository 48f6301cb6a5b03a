package notificationservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	notificationdomain "github.com/funfirstplay/matchup/app/modules/notification/domain"
	notificationdb "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/repositories"
	notificationmetrics "github.com/funfirstplay/matchup/app/observability/metrics/notification"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var testNow = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func newTestService(repo *FakeNotificationRepo) *NotificationService {
	svc := NewNotificationService(repo, slog.Default(), notificationmetrics.NewNoop(), nil, nil)
	svc.clock = &FakeClock{NowFn: func() time.Time { return testNow }}
	return svc
}

func ptr[T any](v T) *T { return &v }

func ownedBy(id, userID int64) *notificationdb.Notification {
	return &notificationdb.Notification{
		ID:             id,
		UserID:         userID,
		MatchID:        ptr(int64(7)),
		Type:           string(notificationevents.TypeMatchInvitation),
		Message:        "You've been invited to play Tennis on Jun 1, 2025 at Central Park",
		Channel:        notificationevents.DefaultChannel,
		DeliveryStatus: notificationdomain.DeliveryPending,
		CreatedAt:      testNow.Add(-time.Hour),
	}
}

func TestStore(t *testing.T) {
	messageID := uuid.NewString()
	valid := notificationevents.RequestedPayloadV1{
		UserID:  11,
		MatchID: ptr(int64(7)),
		Type:    notificationevents.TypeMatchCanceled,
		Message: "The Tennis match on Jun 1, 2025 has been canceled.",
	}

	tests := []struct {
		name      string
		messageID string
		req       notificationevents.RequestedPayloadV1
		createErr error
		inserted  bool
		wantKind  apperrors.Kind
		wantErr   bool
		wantTrace []string
	}{
		{name: "stores with default channel", messageID: messageID, req: valid, inserted: true, wantTrace: []string{"Create"}},
		{name: "duplicate delivery is a no-op", messageID: messageID, req: valid, inserted: false, wantTrace: []string{"Create"}},
		{
			name: "invalid type", messageID: messageID,
			req:      notificationevents.RequestedPayloadV1{UserID: 11, Type: "birthday"},
			wantErr:  true, wantKind: apperrors.KindValidation, wantTrace: []string{},
		},
		{
			name: "missing recipient", messageID: messageID,
			req:      notificationevents.RequestedPayloadV1{Type: notificationevents.TypeMatchUpdated},
			wantErr:  true, wantKind: apperrors.KindValidation, wantTrace: []string{},
		},
		{name: "bad message id", messageID: "nope", req: valid, wantErr: true, wantKind: apperrors.KindValidation, wantTrace: []string{}},
		{name: "database failure", messageID: messageID, req: valid, createErr: errors.New("boom"), wantErr: true, wantKind: apperrors.KindInternal, wantTrace: []string{"Create"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored *notificationdb.Notification
			repo := NewFakeNotificationRepo()
			repo.CreateFunc = func(ctx context.Context, db bun.IDB, n *notificationdb.Notification) (bool, error) {
				stored = n
				return tt.inserted, tt.createErr
			}

			err := newTestService(repo).Store(context.Background(), tt.messageID, tt.req)

			assert.Equal(t, tt.wantTrace, repo.Trace())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, tt.messageID, stored.MessageID)
			assert.Equal(t, "email", stored.Channel)
			assert.Equal(t, notificationdomain.DeliveryPending, stored.DeliveryStatus)
			assert.Equal(t, "match_canceled", stored.Type)
		})
	}
}

func TestList(t *testing.T) {
	var gotLimit, gotOffset int
	var gotIncludeRead bool
	repo := NewFakeNotificationRepo()
	repo.ListByUserFunc = func(ctx context.Context, db bun.IDB, userID int64, includeRead bool, limit, offset int) ([]notificationdb.Notification, error) {
		gotIncludeRead, gotLimit, gotOffset = includeRead, limit, offset
		return []notificationdb.Notification{*ownedBy(2, userID), *ownedBy(1, userID)}, nil
	}
	repo.CountUnreadFunc = func(ctx context.Context, db bun.IDB, userID int64) (int, error) {
		return 2, nil
	}

	page, err := newTestService(repo).List(context.Background(), 11, notificationdomain.ListFilter{Limit: 1000, Offset: -1})

	require.NoError(t, err)
	assert.Equal(t, notificationdomain.MaxListLimit, gotLimit)
	assert.Equal(t, 0, gotOffset)
	assert.False(t, gotIncludeRead)
	assert.Equal(t, 2, page.UnreadCount)
	require.Len(t, page.Notifications, 2)
	assert.Equal(t, int64(2), page.Notifications[0].ID)
	assert.Equal(t, notificationevents.TypeMatchInvitation, page.Notifications[0].Type)

	t.Run("empty page is not nil", func(t *testing.T) {
		page, err := newTestService(NewFakeNotificationRepo()).List(context.Background(), 11, notificationdomain.ListFilter{})
		require.NoError(t, err)
		assert.NotNil(t, page.Notifications)
		assert.Empty(t, page.Notifications)
	})
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		row      *notificationdb.Notification
		getErr   error
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{name: "owner", row: ownedBy(3, 11)},
		{name: "missing", getErr: notificationdb.ErrNotFound, wantKind: apperrors.KindNotFound, wantMsg: "Notification not found"},
		{name: "someone else's", row: ownedBy(3, 12), wantKind: apperrors.KindForbidden, wantMsg: "Not authorized to access this notification"},
		{name: "database failure", getErr: errors.New("boom"), wantKind: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeNotificationRepo()
			repo.GetFunc = func(ctx context.Context, db bun.IDB, id int64) (*notificationdb.Notification, error) {
				return tt.row, tt.getErr
			}

			got, err := newTestService(repo).Get(context.Background(), 11, 3)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), got.ID)
			assert.False(t, got.IsRead())
		})
	}
}

func TestMarkRead(t *testing.T) {
	t.Run("marks unread notification", func(t *testing.T) {
		repo := NewFakeNotificationRepo()
		repo.GetFunc = func(ctx context.Context, db bun.IDB, id int64) (*notificationdb.Notification, error) {
			return ownedBy(id, 11), nil
		}
		var at time.Time
		repo.MarkReadFunc = func(ctx context.Context, db bun.IDB, id int64, when time.Time) (*notificationdb.Notification, error) {
			at = when
			row := ownedBy(id, 11)
			row.ReadAt = &when
			return row, nil
		}

		n, already, err := newTestService(repo).MarkRead(context.Background(), 11, 3)

		require.NoError(t, err)
		assert.False(t, already)
		assert.Equal(t, testNow, at)
		require.NotNil(t, n.ReadAt)
		assert.Equal(t, []string{"Get", "MarkRead"}, repo.Trace())
	})

	t.Run("already read", func(t *testing.T) {
		repo := NewFakeNotificationRepo()
		repo.GetFunc = func(ctx context.Context, db bun.IDB, id int64) (*notificationdb.Notification, error) {
			row := ownedBy(id, 11)
			row.ReadAt = ptr(testNow.Add(-time.Minute))
			return row, nil
		}

		n, already, err := newTestService(repo).MarkRead(context.Background(), 11, 3)

		require.NoError(t, err)
		assert.True(t, already)
		assert.True(t, n.IsRead())
		assert.Equal(t, []string{"Get"}, repo.Trace())
	})

	t.Run("not the recipient", func(t *testing.T) {
		repo := NewFakeNotificationRepo()
		repo.GetFunc = func(ctx context.Context, db bun.IDB, id int64) (*notificationdb.Notification, error) {
			return ownedBy(id, 12), nil
		}

		_, _, err := newTestService(repo).MarkRead(context.Background(), 11, 3)

		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
		assert.Equal(t, "Not authorized to update this notification", err.Error())
	})
}

func TestMarkAllRead(t *testing.T) {
	repo := NewFakeNotificationRepo()
	var gotUser int64
	repo.MarkAllReadFunc = func(ctx context.Context, db bun.IDB, userID int64, at time.Time) (int, error) {
		gotUser = userID
		return 4, nil
	}

	n, err := newTestService(repo).MarkAllRead(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int64(11), gotUser)
}

func TestUnreadCount(t *testing.T) {
	repo := NewFakeNotificationRepo()
	repo.CountUnreadFunc = func(ctx context.Context, db bun.IDB, userID int64) (int, error) {
		return 3, nil
	}

	n, err := newTestService(repo).UnreadCount(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		owner     int64
		deleteErr error
		wantKind  apperrors.Kind
		wantTrace []string
	}{
		{name: "owner deletes", owner: 11, wantTrace: []string{"Get", "Delete"}},
		{name: "not the recipient", owner: 12, wantKind: apperrors.KindForbidden, wantTrace: []string{"Get"}},
		{name: "vanished concurrently", owner: 11, deleteErr: notificationdb.ErrNotFound, wantKind: apperrors.KindNotFound, wantTrace: []string{"Get", "Delete"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeNotificationRepo()
			repo.GetFunc = func(ctx context.Context, db bun.IDB, id int64) (*notificationdb.Notification, error) {
				return ownedBy(id, tt.owner), nil
			}
			repo.DeleteFunc = func(ctx context.Context, db bun.IDB, id int64) error {
				return tt.deleteErr
			}

			err := newTestService(repo).Delete(context.Background(), 11, 3)

			assert.Equal(t, tt.wantTrace, repo.Trace())
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
