package match

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	matchservice "github.com/funfirstplay/matchup/app/modules/match/application"
	matchhandlers "github.com/funfirstplay/matchup/app/modules/match/infrastructure/handlers"
	matchqueue "github.com/funfirstplay/matchup/app/modules/match/infrastructure/queue"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	matchrouter "github.com/funfirstplay/matchup/app/modules/match/infrastructure/router"
	"github.com/funfirstplay/matchup/app/observability"
	"github.com/funfirstplay/matchup/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the match module.
type Module struct {
	MatchService  matchservice.Service
	MatchRouter   *matchrouter.MatchRouter
	QueueService  matchqueue.QueueService
	runCtx        context.Context
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewMatchModule creates and initializes a new match module.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	directory matchservice.Directory,
	notifier matchservice.NotificationSink,
	auth func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Tracer("matchup/match")
	metrics := obs.Registry.MatchMetrics

	logger.InfoContext(ctx, "match.NewMatchModule initializing")

	// 1. Initialize Repository
	repo := matchdb.NewRepository(db)

	// 2. Initialize Service
	service := matchservice.NewMatchService(repo, directory, notifier, logger, metrics, tracer, db)

	// 3. Initialize Handlers and Router
	handlers := matchhandlers.NewMatchHandlers(service, logger, tracer)
	router := matchrouter.NewMatchRouter(logger, handlers, auth)

	module := &Module{
		MatchService:  service,
		MatchRouter:   router,
		observability: obs,
	}
	module.runCtx, module.cancelFunc = context.WithCancel(context.Background())

	// 4. Initialize the deadline sweep
	if cfg.Scheduler.Enabled {
		queue, err := matchqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, cfg.Scheduler.SweepInterval, metrics, service)
		if err != nil {
			return nil, fmt.Errorf("failed to create match queue service: %w", err)
		}
		module.QueueService = queue
	}

	return module, nil
}

// Mount registers the HTTP routes on r.
func (m *Module) Mount(r chi.Router) {
	r.Mount("/api/matches", m.MatchRouter.Routes())
}

// Run starts the match module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting match module")

	if wg != nil {
		defer wg.Done()
	}

	// Close cancels runCtx, which also ends this Run.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(m.runCtx, cancel)
	defer stop()

	if m.runCtx.Err() != nil {
		logger.InfoContext(ctx, "Match module closed before start")
		return
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start match queue service", "error", err)
			return
		}
		// Catch up on deadlines that passed while the service was down.
		if err := m.QueueService.TriggerSweep(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to enqueue startup sweep", "error", err)
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Match module goroutine stopped")
}

// Close shuts down the match module.
func (m *Module) Close(ctx context.Context) error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping match module")

	m.cancelFunc()

	if m.QueueService != nil {
		if err := m.QueueService.Stop(ctx); err != nil {
			logger.Error("Error stopping match queue service", "error", err)
			return fmt.Errorf("error stopping match queue service: %w", err)
		}
	}

	logger.Info("Match module stopped")
	return nil
}
