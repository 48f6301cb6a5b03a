package app

import (
	"log/slog"
	"net/http"
	"time"

	authhandlers "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/handlers"
	"github.com/funfirstplay/matchup/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP handler serving every module.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(app.Logger))
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(app.Config.HTTP.AllowedOrigins))

	r.Get("/health", app.health)
	if app.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(app.Observability.Registry.Prometheus, promhttp.HandlerOpts{}))
	}

	app.MatchModule.Mount(r)
	app.NotificationModule.Mount(r)

	return r
}

func (app *App) health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if err := app.DB.PingContext(r.Context()); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if q := app.MatchModule.QueueService; q != nil {
		checks["scheduler"] = "ok"
		if err := q.HealthCheck(r.Context()); err != nil {
			checks["scheduler"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	message := "Service is healthy"
	if status != http.StatusOK {
		message = "Service is unhealthy"
	}
	httpapi.WriteJSON(w, status, map[string]any{
		"success": status == http.StatusOK,
		"message": message,
		"data":    checks,
	})
}

// requestLogger logs one line per request with its chi request id.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "HTTP request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
