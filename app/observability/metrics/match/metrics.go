package matchmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MatchMetrics records match lifecycle telemetry.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordNotificationsDispatched(ctx context.Context, notificationType string, count int)
	RecordNotificationFailure(ctx context.Context, notificationType string)
	RecordMatchesAutoCanceled(ctx context.Context, count int)
}

type prometheusMetrics struct {
	attempts      *prometheus.CounterVec
	successes     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	notifyFailed  *prometheus.CounterVec
	autoCanceled  prometheus.Counter
}

// NewPrometheus registers the match collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) MatchMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "operation_attempts_total",
			Help:      "Match operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "operation_success_total",
			Help:      "Match operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "operation_failures_total",
			Help:      "Match operations that failed with an infrastructure error or panic.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "operation_duration_seconds",
			Help:      "Match operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "notifications_dispatched_total",
			Help:      "Notification requests handed to the sink.",
		}, []string{"type"}),
		notifyFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "notification_failures_total",
			Help:      "Notification fan-outs the sink rejected.",
		}, []string{"type"}),
		autoCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "auto_canceled_total",
			Help:      "Matches canceled by the confirmation deadline sweep.",
		}),
	}

	reg.MustRegister(m.attempts, m.successes, m.failures, m.duration, m.notifications, m.notifyFailed, m.autoCanceled)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordNotificationsDispatched(_ context.Context, notificationType string, count int) {
	m.notifications.WithLabelValues(notificationType).Add(float64(count))
}

func (m *prometheusMetrics) RecordNotificationFailure(_ context.Context, notificationType string) {
	m.notifyFailed.WithLabelValues(notificationType).Inc()
}

func (m *prometheusMetrics) RecordMatchesAutoCanceled(_ context.Context, count int) {
	m.autoCanceled.Add(float64(count))
}

type noop struct{}

// NewNoop returns metrics that discard everything.
func NewNoop() MatchMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordNotificationsDispatched(context.Context, string, int)             {}
func (noop) RecordNotificationFailure(context.Context, string)                      {}
func (noop) RecordMatchesAutoCanceled(context.Context, int)                         {}
