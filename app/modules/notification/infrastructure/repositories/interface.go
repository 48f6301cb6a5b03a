package notificationdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository persists notification records. A nil bun.IDB uses the
// repository's own connection.
type Repository interface {
	// Create stores n unless a record with the same message id exists. It
	// reports whether a row was inserted.
	Create(ctx context.Context, db bun.IDB, n *Notification) (bool, error)
	Get(ctx context.Context, db bun.IDB, notificationID int64) (*Notification, error)
	// ListByUser returns newest first, joined with the match's sport.
	ListByUser(ctx context.Context, db bun.IDB, userID int64, includeRead bool, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, db bun.IDB, userID int64) (int, error)
	// MarkRead sets read_at unless it is already set and returns the row.
	MarkRead(ctx context.Context, db bun.IDB, notificationID int64, at time.Time) (*Notification, error)
	// MarkAllRead marks every unread notification of userID and returns how
	// many changed.
	MarkAllRead(ctx context.Context, db bun.IDB, userID int64, at time.Time) (int, error)
	Delete(ctx context.Context, db bun.IDB, notificationID int64) error
}
