package notificationpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	notificationmetrics "github.com/funfirstplay/matchup/app/observability/metrics/notification"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// Publisher hands notification requests to the event bus.
type Publisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	metrics   notificationmetrics.NotificationMetrics
}

// NewPublisher creates a Publisher on top of a watermill publisher.
func NewPublisher(publisher message.Publisher, logger *slog.Logger, metrics notificationmetrics.NotificationMetrics) *Publisher {
	if metrics == nil {
		metrics = notificationmetrics.NewNoop()
	}
	return &Publisher{publisher: publisher, logger: logger, metrics: metrics}
}

// Notify publishes one message per request. Every request is attempted; the
// returned error joins the individual failures.
func (p *Publisher) Notify(ctx context.Context, requests []notificationevents.RequestedPayloadV1) error {
	correlationID := correlationIDFrom(ctx)

	var errs []error
	for _, req := range requests {
		msg, err := newMessage(ctx, correlationID, req)
		if err != nil {
			errs = append(errs, err)
			p.metrics.RecordPublishFailure(ctx, string(req.Type))
			continue
		}

		if err := p.publisher.Publish(notificationevents.RequestedV1, msg); err != nil {
			p.logger.ErrorContext(ctx, "Failed to publish notification request",
				slog.String("message_id", msg.UUID),
				slog.String("correlation_id", correlationID),
				slog.Int64("user_id", req.UserID),
				slog.String("type", string(req.Type)),
				slog.String("error", err.Error()),
			)
			p.metrics.RecordPublishFailure(ctx, string(req.Type))
			errs = append(errs, fmt.Errorf("publish %s for user %d: %w", req.Type, req.UserID, err))
			continue
		}

		p.metrics.RecordPublished(ctx, string(req.Type))
		p.logger.DebugContext(ctx, "Published notification request",
			slog.String("message_id", msg.UUID),
			slog.String("correlation_id", correlationID),
			slog.Int64("user_id", req.UserID),
			slog.String("type", string(req.Type)),
		)
	}

	return errors.Join(errs...)
}

func newMessage(ctx context.Context, correlationID string, req notificationevents.RequestedPayloadV1) (*message.Message, error) {
	if req.Channel == "" {
		req.Channel = notificationevents.DefaultChannel
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification request: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	middleware.SetCorrelationID(correlationID, msg)
	msg.Metadata.Set("topic", notificationevents.RequestedV1)
	return msg, nil
}

// correlationIDFrom reuses the active trace id so a request's notifications
// share one correlation id with its logs.
func correlationIDFrom(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return watermill.NewUUID()
}
