package notificationhandlers

import (
	"net/http"

	authhandlers "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/handlers"
	notificationdomain "github.com/funfirstplay/matchup/app/modules/notification/domain"
	"github.com/funfirstplay/matchup/app/shared/httpapi"
)

// ListNotifications handles GET /api/notifications.
func (h *NotificationHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "ListNotifications")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	page, err := h.service.List(ctx, caller.UserID, filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Notifications retrieved successfully", page)
}

// UnreadCount handles GET /api/notifications/unread/count.
func (h *NotificationHandlers) UnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "UnreadCount")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(ctx, caller.UserID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Unread notification count retrieved", map[string]any{"count": count})
}

// GetNotification handles GET /api/notifications/{notificationID}.
func (h *NotificationHandlers) GetNotification(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "GetNotification")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := httpapi.URLParamInt64(r, "notificationID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	n, err := h.service.Get(ctx, caller.UserID, id)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Notification retrieved successfully", map[string]any{"notification": n})
}

// MarkRead handles PUT /api/notifications/{notificationID}/read.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "MarkRead")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := httpapi.URLParamInt64(r, "notificationID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	n, alreadyRead, err := h.service.MarkRead(ctx, caller.UserID, id)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	message := "Notification marked as read"
	if alreadyRead {
		message = "Notification already marked as read"
	}
	httpapi.WriteSuccess(w, http.StatusOK, message, map[string]any{"notification": n})
}

// MarkAllRead handles POST /api/notifications/mark-all-read.
func (h *NotificationHandlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "MarkAllRead")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllRead(ctx, caller.UserID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "All notifications marked as read", map[string]any{"updated": updated})
}

// DeleteNotification handles DELETE /api/notifications/{notificationID}.
func (h *NotificationHandlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "DeleteNotification")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := httpapi.URLParamInt64(r, "notificationID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.Delete(ctx, caller.UserID, id); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Notification deleted successfully", nil)
}

func parseListFilter(r *http.Request) (notificationdomain.ListFilter, error) {
	var filter notificationdomain.ListFilter
	var err error

	if filter.IncludeRead, err = httpapi.QueryBool(r, "include_read", false); err != nil {
		return filter, err
	}
	if filter.Limit, err = httpapi.QueryInt(r, "limit", notificationdomain.DefaultListLimit); err != nil {
		return filter, err
	}
	if filter.Offset, err = httpapi.QueryInt(r, "offset", 0); err != nil {
		return filter, err
	}
	return filter, nil
}
