package notificationdomain

import (
	"time"

	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
)

// DefaultListLimit is the page size used when a list request names none.
const DefaultListLimit = 50

// MaxListLimit caps a single page.
const MaxListLimit = 200

// DeliveryPending is the delivery status of a freshly stored notification.
const DeliveryPending = "pending"

// Notification is a stored notification addressed to one user.
type Notification struct {
	ID             int64                   `json:"notification_id"`
	UserID         int64                   `json:"user_id"`
	MatchID        *int64                  `json:"match_id"`
	Type           notificationevents.Type `json:"type"`
	Message        string                  `json:"message"`
	Channel        string                  `json:"channel"`
	DeliveryStatus string                  `json:"delivery_status"`
	ReadAt         *time.Time              `json:"read_at"`
	CreatedAt      time.Time               `json:"created_at"`
	SportID        *int64                  `json:"sport_id,omitempty"`
	SportName      *string                 `json:"sport_name,omitempty"`
}

// IsRead reports whether the recipient has read the notification.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// ListFilter pages through one user's notifications.
type ListFilter struct {
	IncludeRead bool
	Limit       int
	Offset      int
}

// Normalize applies the default and maximum page sizes.
func (f ListFilter) Normalize() ListFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Page is a page of notifications plus the recipient's unread total.
type Page struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
