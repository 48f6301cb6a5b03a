package matchhandlers

import (
	"context"
	"log/slog"
	"net/http"

	matchservice "github.com/funfirstplay/matchup/app/modules/match/application"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// MatchHandlers translates HTTP requests into match service calls.
type MatchHandlers struct {
	service matchservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewMatchHandlers creates a new MatchHandlers.
func NewMatchHandlers(service matchservice.Service, logger *slog.Logger, tracer trace.Tracer) *MatchHandlers {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("matchhandlers")
	}
	return &MatchHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *MatchHandlers) startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return h.tracer.Start(r.Context(), "http."+name, trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.path", r.URL.Path),
	))
}

var _ Handlers = (*MatchHandlers)(nil)
