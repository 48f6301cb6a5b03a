package notificationmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NotificationMetrics records notification publishing and storage telemetry.
type NotificationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordPublished(ctx context.Context, notificationType string)
	RecordPublishFailure(ctx context.Context, notificationType string)
	RecordStored(ctx context.Context, notificationType string)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	published *prometheus.CounterVec
	pubFailed *prometheus.CounterVec
	stored    *prometheus.CounterVec
}

// NewPrometheus registers the notification collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) NotificationMetrics {
	labels := []string{"operation", "service"}
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "operation_attempts_total", Help: "Notification operations attempted.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "operation_success_total", Help: "Notification operations completed.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "operation_failures_total", Help: "Notification operations failed.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "operation_duration_seconds", Help: "Notification operation latency.",
			Buckets: prometheus.DefBuckets,
		}, labels),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "published_total", Help: "Notification requests published to the bus.",
		}, []string{"type"}),
		pubFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "publish_failures_total", Help: "Notification requests the bus rejected.",
		}, []string{"type"}),
		stored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notification",
			Name: "stored_total", Help: "Notification records persisted.",
		}, []string{"type"}),
	}

	reg.MustRegister(m.attempts, m.successes, m.failures, m.duration, m.published, m.pubFailed, m.stored)
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

func (m *prometheusMetrics) RecordPublished(_ context.Context, notificationType string) {
	m.published.WithLabelValues(notificationType).Inc()
}

func (m *prometheusMetrics) RecordPublishFailure(_ context.Context, notificationType string) {
	m.pubFailed.WithLabelValues(notificationType).Inc()
}

func (m *prometheusMetrics) RecordStored(_ context.Context, notificationType string) {
	m.stored.WithLabelValues(notificationType).Inc()
}

type noop struct{}

// NewNoop returns metrics that discard everything.
func NewNoop() NotificationMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordPublished(context.Context, string)                                {}
func (noop) RecordPublishFailure(context.Context, string)                           {}
func (noop) RecordStored(context.Context, string)                                   {}
