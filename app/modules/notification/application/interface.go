package notificationservice

import (
	"context"
	"time"

	notificationdomain "github.com/funfirstplay/matchup/app/modules/notification/domain"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
)

// Service stores notification requests and serves them to their recipients.
type Service interface {
	// Store persists one request. Redelivery of the same message id is a no-op.
	Store(ctx context.Context, messageID string, req notificationevents.RequestedPayloadV1) error
	List(ctx context.Context, userID int64, filter notificationdomain.ListFilter) (*notificationdomain.Page, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Get(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, error)
	// MarkRead reports whether the notification was already read.
	MarkRead(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, bool, error)
	MarkAllRead(ctx context.Context, callerID int64) (int, error)
	Delete(ctx context.Context, callerID, notificationID int64) error
}

// Clock abstracts the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }
