package notificationdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Notification is a row of the notifications table.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID             int64      `bun:"notification_id,pk,autoincrement"`
	MessageID      string     `bun:"message_id,type:uuid,notnull,unique"`
	UserID         int64      `bun:"user_id,notnull"`
	MatchID        *int64     `bun:"match_id"`
	Type           string     `bun:"type,notnull"`
	Message        string     `bun:"message,notnull"`
	Channel        string     `bun:"channel,notnull"`
	DeliveryStatus string     `bun:"delivery_status,notnull"`
	ReadAt         *time.Time `bun:"read_at"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`

	SportID   *int64  `bun:"sport_id,scanonly"`
	SportName *string `bun:"sport_name,scanonly"`
}
