package notification

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/funfirstplay/matchup/app/eventbus"
	notificationservice "github.com/funfirstplay/matchup/app/modules/notification/application"
	notificationhandlers "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/handlers"
	notificationpublisher "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/publisher"
	notificationdb "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/repositories"
	notificationrouter "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/router"
	"github.com/funfirstplay/matchup/app/observability"
	"github.com/funfirstplay/matchup/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// Module represents the notification module.
type Module struct {
	NotificationService notificationservice.Service
	Publisher           *notificationpublisher.Publisher
	HTTPRouter          *notificationrouter.NotificationRouter
	EventRouter         *notificationrouter.EventRouter
	runCtx              context.Context
	cancelFunc          context.CancelFunc
	observability       observability.Observability
}

// NewNotificationModule creates the notification module. Requests published
// through Publisher are consumed from bus and stored.
func NewNotificationModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	auth func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Tracer("matchup/notification")
	metrics := obs.Registry.NotificationMetrics

	logger.InfoContext(ctx, "notification.NewNotificationModule initializing")

	repo := notificationdb.NewRepository(db)
	service := notificationservice.NewNotificationService(repo, logger, metrics, tracer, db)
	handlers := notificationhandlers.NewNotificationHandlers(service, logger, tracer)

	var registry *prometheus.Registry
	if cfg.Observability.MetricsEnabled {
		registry = obs.Registry.Prometheus
	}
	eventRouter, err := notificationrouter.NewEventRouter(logger, bus, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification event router: %w", err)
	}
	eventRouter.Configure(handlers)

	runCtx, cancel := context.WithCancel(context.Background())
	return &Module{
		NotificationService: service,
		Publisher:           notificationpublisher.NewPublisher(bus, logger, metrics),
		HTTPRouter:          notificationrouter.NewNotificationRouter(logger, handlers, auth),
		EventRouter:         eventRouter,
		runCtx:              runCtx,
		cancelFunc:          cancel,
		observability:       obs,
	}, nil
}

// Mount registers the HTTP routes on r.
func (m *Module) Mount(r chi.Router) {
	r.Mount("/api/notifications", m.HTTPRouter.Routes())
}

// Run consumes notification requests until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting notification module")

	if wg != nil {
		defer wg.Done()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(m.runCtx, cancel)
	defer stop()

	if m.runCtx.Err() != nil {
		logger.InfoContext(ctx, "Notification module closed before start")
		return
	}

	if err := m.EventRouter.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Notification event router stopped with error", "error", err)
		return
	}

	logger.InfoContext(ctx, "Notification module goroutine stopped")
}

// Close shuts down the notification module.
func (m *Module) Close(ctx context.Context) error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping notification module")

	m.cancelFunc()

	if err := m.EventRouter.Close(); err != nil {
		logger.Error("Error closing notification event router", "error", err)
		return fmt.Errorf("error closing notification event router: %w", err)
	}

	logger.Info("Notification module stopped")
	return nil
}
