package notificationrouter

import (
	"log/slog"
	"net/http"

	notificationhandlers "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// NotificationRouter mounts the notification HTTP surface. Every route
// requires a caller.
type NotificationRouter struct {
	logger   *slog.Logger
	handlers notificationhandlers.Handlers
	auth     func(http.Handler) http.Handler
}

// NewNotificationRouter creates a new NotificationRouter.
func NewNotificationRouter(logger *slog.Logger, handlers notificationhandlers.Handlers, auth func(http.Handler) http.Handler) *NotificationRouter {
	return &NotificationRouter{
		logger:   logger,
		handlers: handlers,
		auth:     auth,
	}
}

// Routes returns the sub-router served under /api/notifications.
func (r *NotificationRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(r.auth)

	router.Get("/", r.handlers.ListNotifications)
	router.Get("/unread/count", r.handlers.UnreadCount)
	router.Post("/mark-all-read", r.handlers.MarkAllRead)
	router.Get("/{notificationID}", r.handlers.GetNotification)
	router.Put("/{notificationID}/read", r.handlers.MarkRead)
	router.Delete("/{notificationID}", r.handlers.DeleteNotification)

	r.logger.Info("Notification routes registered")
	return router
}
