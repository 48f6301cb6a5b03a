package notificationhandlers

import (
	"context"

	notificationservice "github.com/funfirstplay/matchup/app/modules/notification/application"
	notificationdomain "github.com/funfirstplay/matchup/app/modules/notification/domain"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
)

type FakeNotificationService struct {
	trace []string

	StoreFunc       func(ctx context.Context, messageID string, req notificationevents.RequestedPayloadV1) error
	ListFunc        func(ctx context.Context, userID int64, filter notificationdomain.ListFilter) (*notificationdomain.Page, error)
	UnreadCountFunc func(ctx context.Context, userID int64) (int, error)
	GetFunc         func(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, error)
	MarkReadFunc    func(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, bool, error)
	MarkAllReadFunc func(ctx context.Context, callerID int64) (int, error)
	DeleteFunc      func(ctx context.Context, callerID, notificationID int64) error
}

func (f *FakeNotificationService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeNotificationService) Trace() []string { return f.trace }

func (f *FakeNotificationService) Store(ctx context.Context, messageID string, req notificationevents.RequestedPayloadV1) error {
	f.record("Store")
	if f.StoreFunc != nil {
		return f.StoreFunc(ctx, messageID, req)
	}
	return nil
}

func (f *FakeNotificationService) List(ctx context.Context, userID int64, filter notificationdomain.ListFilter) (*notificationdomain.Page, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, userID, filter)
	}
	return &notificationdomain.Page{Notifications: []notificationdomain.Notification{}}, nil
}

func (f *FakeNotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	f.record("UnreadCount")
	if f.UnreadCountFunc != nil {
		return f.UnreadCountFunc(ctx, userID)
	}
	return 0, nil
}

func (f *FakeNotificationService) Get(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, callerID, notificationID)
	}
	return &notificationdomain.Notification{ID: notificationID, UserID: callerID}, nil
}

func (f *FakeNotificationService) MarkRead(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, bool, error) {
	f.record("MarkRead")
	if f.MarkReadFunc != nil {
		return f.MarkReadFunc(ctx, callerID, notificationID)
	}
	return &notificationdomain.Notification{ID: notificationID, UserID: callerID}, false, nil
}

func (f *FakeNotificationService) MarkAllRead(ctx context.Context, callerID int64) (int, error) {
	f.record("MarkAllRead")
	if f.MarkAllReadFunc != nil {
		return f.MarkAllReadFunc(ctx, callerID)
	}
	return 0, nil
}

func (f *FakeNotificationService) Delete(ctx context.Context, callerID, notificationID int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, callerID, notificationID)
	}
	return nil
}

var _ notificationservice.Service = (*FakeNotificationService)(nil)
