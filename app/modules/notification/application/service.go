package notificationservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	notificationdb "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/repositories"
	notificationmetrics "github.com/funfirstplay/matchup/app/observability/metrics/notification"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "NotificationService"

// NotificationService implements the Service interface.
type NotificationService struct {
	repo    notificationdb.Repository
	logger  *slog.Logger
	metrics notificationmetrics.NotificationMetrics
	tracer  trace.Tracer
	db      *bun.DB
	clock   Clock
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	repo notificationdb.Repository,
	logger *slog.Logger,
	metrics notificationmetrics.NotificationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = notificationmetrics.NewNoop()
	}
	return &NotificationService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		clock:   realClock{},
	}
}

var _ Service = (*NotificationService)(nil)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any](
	s *NotificationService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (results.OperationResult[S, error], error),
) (result results.OperationResult[S, error], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("identifier", identifier),
				slog.String("error", err.Error()),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, error]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.String("error", wrappedErr.Error()),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.String("failure", (*result.Failure).Error()),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any](
	s *NotificationService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (results.OperationResult[S, error], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, error]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

func unwrap[T any](result results.OperationResult[T, error], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}

func failure[S any](err *apperrors.Error) (results.OperationResult[S, error], error) {
	return results.FailureResult[S, error](err), nil
}
