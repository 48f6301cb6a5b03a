package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/funfirstplay/matchup/app/eventbus"
	"github.com/funfirstplay/matchup/app/modules/auth"
	"github.com/funfirstplay/matchup/app/modules/directory"
	"github.com/funfirstplay/matchup/app/modules/match"
	"github.com/funfirstplay/matchup/app/modules/notification"
	"github.com/funfirstplay/matchup/app/observability"
	"github.com/funfirstplay/matchup/config"
	"github.com/funfirstplay/matchup/db/bundb"
	"github.com/uptrace/bun"
)

// App holds the application components.
type App struct {
	Config             *config.Config
	Observability      observability.Observability
	Logger             *slog.Logger
	DB                 *bun.DB
	EventBus           eventbus.EventBus
	AuthModule         *auth.Module
	DirectoryModule    *directory.Module
	MatchModule        *match.Module
	NotificationModule *notification.Module
	server             *http.Server
	wg                 sync.WaitGroup
}

// Initialize opens the database and event bus and wires every module.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.Logger = obs.Provider.Logger

	app.Logger.InfoContext(ctx, "Initializing application")

	db, err := bundb.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	app.DB = db

	bus, err := eventbus.New(ctx, cfg.NATS.URL, "matchup", app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	app.AuthModule = auth.NewModule(cfg, app.Logger)
	requireAuth := app.AuthModule.Middleware()

	if app.DirectoryModule, err = directory.NewDirectoryModule(ctx, cfg, app.Logger, app.DB); err != nil {
		return fmt.Errorf("failed to initialize directory module: %w", err)
	}

	if app.NotificationModule, err = notification.NewNotificationModule(ctx, cfg, obs, app.DB, bus, requireAuth); err != nil {
		return fmt.Errorf("failed to initialize notification module: %w", err)
	}

	if app.MatchModule, err = match.NewMatchModule(
		ctx, cfg, obs, app.DB,
		app.DirectoryModule.Directory,
		app.NotificationModule.Publisher,
		requireAuth,
	); err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}

	app.server = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      app.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	app.Logger.InfoContext(ctx, "Application initialized")
	return nil
}
