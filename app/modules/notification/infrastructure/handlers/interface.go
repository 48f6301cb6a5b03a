package notificationhandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers serves the notification HTTP surface.
type Handlers interface {
	ListNotifications(w http.ResponseWriter, r *http.Request)
	GetNotification(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
	DeleteNotification(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
}

// EventHandlers consumes notification events from the bus.
type EventHandlers interface {
	HandleNotificationRequested(msg *message.Message) error
}
