package matchservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	matchmetrics "github.com/funfirstplay/matchup/app/observability/metrics/match"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "MatchService"

// MatchService implements the Service interface.
type MatchService struct {
	repo      matchdb.Repository
	directory Directory
	notifier  NotificationSink
	logger    *slog.Logger
	metrics   matchmetrics.MatchMetrics
	tracer    trace.Tracer
	db        *bun.DB
	clock     Clock
	times     *TimeParser
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	repo matchdb.Repository,
	directory Directory,
	notifier NotificationSink,
	logger *slog.Logger,
	metrics matchmetrics.MatchMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = matchmetrics.NewNoop()
	}
	return &MatchService{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		clock:     realClock{},
		times:     NewTimeParser(),
	}
}

var _ Service = (*MatchService)(nil)

// mutation is the success payload of a write: the value returned to the
// caller and the notifications to hand to the sink once the write commits.
type mutation[T any] struct {
	value         T
	notifications []notificationevents.RequestedPayloadV1
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *MatchService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

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

	s.logger.InfoContext(ctx, "Operation triggered",
		slog.String("operation", operationName),
		slog.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("identifier", identifier),
				slog.String("error", err.Error()),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
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

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *MatchService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// commitThenNotify runs fn in a transaction and hands the collected
// notifications to the sink only after it committed successfully.
func commitThenNotify[T any](
	s *MatchService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[mutation[T], error], error),
) (results.OperationResult[mutation[T], error], error) {
	result, err := runInTx(s, ctx, fn)
	if err != nil {
		return failureOrError[mutation[T]](err)
	}
	if !result.IsSuccess() {
		return result, nil
	}
	s.dispatch(ctx, result.Success.notifications)
	return result, nil
}

// failureOrError routes classified errors into a failure result and leaves
// everything else as an infrastructure error. Logic running inside a
// transaction returns classified errors as plain errors so the transaction
// rolls back.
func failureOrError[S any](err error) (results.OperationResult[S, error], error) {
	if isDomainFailure(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

// unwrap converts an operation result into the public (value, error) shape.
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

func toDomainMatch(m *matchdb.Match) *matchdomain.Match {
	return &matchdomain.Match{
		ID:                   m.ID,
		SportID:              m.SportID,
		SportName:            m.SportName,
		StartTime:            m.StartTime.UTC(),
		EndTime:              m.EndTime.UTC(),
		Location:             m.Location,
		Status:               matchdomain.MatchStatus(m.Status),
		RequiredSkillLevel:   m.RequiredSkillLevel,
		SkillLevelName:       m.SkillLevelName,
		MinPlayers:           m.MinPlayers,
		ConfirmedPlayers:     m.ConfirmedPlayers,
		ConfirmationDeadline: m.ConfirmationDeadline.UTC(),
		AutoCancel:           m.AutoCancel,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toRosterPlayer(p matchdb.MatchPlayer) matchdomain.RosterPlayer {
	return matchdomain.RosterPlayer{
		MatchPlayerID: p.ID,
		MatchID:       p.MatchID,
		UserID:        p.UserID,
		Username:      p.Username,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Status:        matchdomain.PlayerStatus(p.Status),
		RespondedAt:   p.RespondedAt,
		CreatedAt:     p.CreatedAt,
	}
}
