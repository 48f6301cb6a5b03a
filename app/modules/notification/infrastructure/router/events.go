package notificationrouter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	notificationhandlers "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/handlers"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const handlerName = "notification." + notificationevents.RequestedV1

// EventRouter consumes notification requests from the bus.
type EventRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	registry   *prometheus.Registry
}

// NewEventRouter creates a watermill router reading from subscriber. When
// registry is nil the router runs without Prometheus metrics.
func NewEventRouter(logger *slog.Logger, subscriber message.Subscriber, registry *prometheus.Registry) (*EventRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification router: %w", err)
	}

	return &EventRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		registry:   registry,
	}, nil
}

// Configure adds middleware and registers the notification handlers.
func (r *EventRouter) Configure(handlers notificationhandlers.EventHandlers) {
	if r.registry != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Notification")
		builder := metrics.NewPrometheusMetricsBuilder(r.registry, "", "")
		builder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		middleware.Recoverer,
	)

	r.Router.AddNoPublisherHandler(
		handlerName,
		notificationevents.RequestedV1,
		r.subscriber,
		handlers.HandleNotificationRequested,
	)
}

// Run blocks until ctx is canceled or the router fails.
func (r *EventRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (r *EventRouter) Running() chan struct{} {
	return r.Router.Running()
}

// Close stops the router.
func (r *EventRouter) Close() error {
	return r.Router.Close()
}
