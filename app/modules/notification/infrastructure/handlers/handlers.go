package notificationhandlers

import (
	"context"
	"log/slog"
	"net/http"

	notificationservice "github.com/funfirstplay/matchup/app/modules/notification/application"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NotificationHandlers adapts HTTP requests and bus messages to the
// notification service.
type NotificationHandlers struct {
	service notificationservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewNotificationHandlers creates a new NotificationHandlers.
func NewNotificationHandlers(service notificationservice.Service, logger *slog.Logger, tracer trace.Tracer) *NotificationHandlers {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("notificationhandlers")
	}
	return &NotificationHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *NotificationHandlers) startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return h.tracer.Start(r.Context(), "http."+name, trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.path", r.URL.Path),
	))
}

var (
	_ Handlers      = (*NotificationHandlers)(nil)
	_ EventHandlers = (*NotificationHandlers)(nil)
)
