package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Run starts the modules and the HTTP server and blocks until ctx is
// canceled or the server fails.
func (app *App) Run(ctx context.Context) error {
	app.wg.Add(2)
	go app.NotificationModule.Run(ctx, &app.wg)
	go app.MatchModule.Run(ctx, &app.wg)

	serverErr := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", slog.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}
}

// Close stops the server, the modules and the shared connections in reverse
// start order.
func (app *App) Close(ctx context.Context) error {
	app.Logger.Info("Closing application")
	var errs []error

	if app.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if app.MatchModule != nil {
		if err := app.MatchModule.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if app.NotificationModule != nil {
		if err := app.NotificationModule.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	waitDone := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(10 * time.Second):
		app.Logger.Warn("Timed out waiting for modules to stop")
	}

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus close: %w", err))
		}
	}
	if app.DirectoryModule != nil {
		if err := app.DirectoryModule.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sport cache close: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}
