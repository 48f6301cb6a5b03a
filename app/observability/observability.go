package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	matchmetrics "github.com/funfirstplay/matchup/app/observability/metrics/match"
	notificationmetrics "github.com/funfirstplay/matchup/app/observability/metrics/notification"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config holds observability settings.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	MetricsEnabled bool
	Output         io.Writer
}

// Provider hands out the logger and tracer provider.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Registry holds the prometheus registry and per-module metrics.
type Registry struct {
	Prometheus          *prometheus.Registry
	MatchMetrics        matchmetrics.MatchMetrics
	NotificationMetrics notificationmetrics.NotificationMetrics
}

// Observability bundles logging, tracing and metrics.
type Observability struct {
	Provider Provider
	Registry Registry
}

// Tracer returns a named tracer from the configured provider.
func (o Observability) Tracer(name string) trace.Tracer {
	return o.Provider.TracerProvider.Tracer(name)
}

// Init builds the observability stack. Metrics fall back to no-ops when
// disabled.
func Init(cfg Config) Observability {
	logger := NewLogger(cfg.LogLevel, cfg.Output).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	obs := Observability{
		Provider: Provider{
			Logger:         logger,
			TracerProvider: otel.GetTracerProvider(),
		},
		Registry: Registry{
			Prometheus:          reg,
			MatchMetrics:        matchmetrics.NewNoop(),
			NotificationMetrics: notificationmetrics.NewNoop(),
		},
	}

	if cfg.MetricsEnabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		obs.Registry.MatchMetrics = matchmetrics.NewPrometheus(reg, "matchup")
		obs.Registry.NotificationMetrics = notificationmetrics.NewPrometheus(reg, "matchup")
	}

	return obs
}

// NewLogger builds a JSON slog logger at the given level.
func NewLogger(level string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stdout
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
