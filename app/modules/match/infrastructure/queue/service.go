package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// Metrics is the operation counter set the queue reports to.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// QueueService runs the match module's background jobs.
type QueueService interface {
	// TriggerSweep enqueues an immediate deadline sweep.
	TriggerSweep(ctx context.Context) error
	// HealthCheck verifies the queue service is healthy
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service wraps a River client with the periodic deadline sweep registered.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics Metrics
}

// NewService connects a pgx pool for River and registers the sweep worker as
// a periodic job running every interval.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, interval time.Duration, metrics Metrics, sweeper Sweeper) (*Service, error) {
	ctxLogger := logger.With(
		slog.String("operation", "new_match_queue_service"),
		slog.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.Info("Initializing Match queue service", slog.Duration("sweep_interval", interval))

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", slog.String("error", err.Error()))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewAutoCancelSweepWorker(ctxLogger, sweeper))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			QueueName:          {MaxWorkers: 1},
		},
		PeriodicJobs: []*river.PeriodicJob{sweepPeriodicJob(interval)},
		Workers:      workers,
		Logger:       ctxLogger,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", slog.String("error", err.Error()))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Match queue service initialized successfully")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

func sweepPeriodicJob(interval time.Duration) *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(interval),
		func() (river.JobArgs, *river.InsertOpts) {
			return AutoCancelSweepJob{}, sweepInsertOpts(interval)
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

// sweepInsertOpts keeps at most one sweep per interval in the queue.
func sweepInsertOpts(interval time.Duration) *river.InsertOpts {
	return &river.InsertOpts{
		Queue:       QueueName,
		MaxAttempts: 3,
		UniqueOpts: river.UniqueOpts{
			ByPeriod: interval,
		},
	}
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")
	s.logger.Info("Starting Match queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", slog.String("error", err.Error()))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	return nil
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	s.logger.Info("Stopping Match queue service")

	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		s.logger.Error("Failed to stop River client", slog.String("error", err.Error()))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	return nil
}

// TriggerSweep enqueues a sweep outside the periodic schedule.
func (s *Service) TriggerSweep(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "trigger_sweep", "river")

	res, err := s.client.Insert(ctx, AutoCancelSweepJob{}, &river.InsertOpts{Queue: QueueName})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "trigger_sweep", "river")
		return fmt.Errorf("failed to enqueue sweep: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "trigger_sweep", "river")
	s.logger.InfoContext(ctx, "Sweep enqueued", slog.Int64("job_id", res.Job.ID))
	return nil
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var pending int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Where("kind = ?", AutoCancelSweepJob{}.Kind()).
		Where("state IN (?)", bun.In([]string{"available", "scheduled", "running", "retryable"})).
		Scan(ctx, &pending)
	if err != nil {
		s.logger.Error("Queue service health check failed", slog.String("error", err.Error()))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.metrics.RecordOperationDuration(ctx, "health_check", "river", time.Since(start))
	s.logger.Debug("Queue service health check passed", slog.Int("pending_sweeps", pending))
	return nil
}
