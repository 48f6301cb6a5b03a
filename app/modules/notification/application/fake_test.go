package notificationservice

import (
	"context"
	"time"

	notificationdb "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Notification Repo
// ------------------------

type FakeNotificationRepo struct {
	trace []string

	CreateFunc      func(ctx context.Context, db bun.IDB, n *notificationdb.Notification) (bool, error)
	GetFunc         func(ctx context.Context, db bun.IDB, notificationID int64) (*notificationdb.Notification, error)
	ListByUserFunc  func(ctx context.Context, db bun.IDB, userID int64, includeRead bool, limit, offset int) ([]notificationdb.Notification, error)
	CountUnreadFunc func(ctx context.Context, db bun.IDB, userID int64) (int, error)
	MarkReadFunc    func(ctx context.Context, db bun.IDB, notificationID int64, at time.Time) (*notificationdb.Notification, error)
	MarkAllReadFunc func(ctx context.Context, db bun.IDB, userID int64, at time.Time) (int, error)
	DeleteFunc      func(ctx context.Context, db bun.IDB, notificationID int64) error
}

func NewFakeNotificationRepo() *FakeNotificationRepo {
	return &FakeNotificationRepo{trace: []string{}}
}

func (f *FakeNotificationRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeNotificationRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeNotificationRepo) Create(ctx context.Context, db bun.IDB, n *notificationdb.Notification) (bool, error) {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, n)
	}
	return true, nil
}

func (f *FakeNotificationRepo) Get(ctx context.Context, db bun.IDB, notificationID int64) (*notificationdb.Notification, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, notificationID)
	}
	return nil, notificationdb.ErrNotFound
}

func (f *FakeNotificationRepo) ListByUser(ctx context.Context, db bun.IDB, userID int64, includeRead bool, limit, offset int) ([]notificationdb.Notification, error) {
	f.record("ListByUser")
	if f.ListByUserFunc != nil {
		return f.ListByUserFunc(ctx, db, userID, includeRead, limit, offset)
	}
	return nil, nil
}

func (f *FakeNotificationRepo) CountUnread(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	f.record("CountUnread")
	if f.CountUnreadFunc != nil {
		return f.CountUnreadFunc(ctx, db, userID)
	}
	return 0, nil
}

func (f *FakeNotificationRepo) MarkRead(ctx context.Context, db bun.IDB, notificationID int64, at time.Time) (*notificationdb.Notification, error) {
	f.record("MarkRead")
	if f.MarkReadFunc != nil {
		return f.MarkReadFunc(ctx, db, notificationID, at)
	}
	return nil, notificationdb.ErrNotFound
}

func (f *FakeNotificationRepo) MarkAllRead(ctx context.Context, db bun.IDB, userID int64, at time.Time) (int, error) {
	f.record("MarkAllRead")
	if f.MarkAllReadFunc != nil {
		return f.MarkAllReadFunc(ctx, db, userID, at)
	}
	return 0, nil
}

func (f *FakeNotificationRepo) Delete(ctx context.Context, db bun.IDB, notificationID int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, notificationID)
	}
	return nil
}

var _ notificationdb.Repository = (*FakeNotificationRepo)(nil)

// ------------------------
// Fake Clock
// ------------------------

type FakeClock struct {
	NowFn func() time.Time
}

func (c *FakeClock) Now() time.Time {
	if c.NowFn != nil {
		return c.NowFn()
	}
	return time.Time{}
}

var _ Clock = (*FakeClock)(nil)
