package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"
)

// Sweeper is the slice of the match service the worker drives.
type Sweeper interface {
	AutoCancelExpired(ctx context.Context, now time.Time) (int, error)
}

// AutoCancelSweepWorker runs one deadline sweep per job.
type AutoCancelSweepWorker struct {
	river.WorkerDefaults[AutoCancelSweepJob]

	sweeper Sweeper
	logger  *slog.Logger
	now     func() time.Time
}

// NewAutoCancelSweepWorker creates the sweep worker.
func NewAutoCancelSweepWorker(logger *slog.Logger, sweeper Sweeper) *AutoCancelSweepWorker {
	return &AutoCancelSweepWorker{
		sweeper: sweeper,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Work cancels every expired match. Individual match failures are handled by
// the service; only a failed listing fails the job.
func (w *AutoCancelSweepWorker) Work(ctx context.Context, job *river.Job[AutoCancelSweepJob]) error {
	now := w.now()

	canceled, err := w.sweeper.AutoCancelExpired(ctx, now)
	if err != nil {
		w.logger.ErrorContext(ctx, "Auto-cancel sweep failed",
			slog.Int64("job_id", job.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("auto-cancel sweep: %w", err)
	}

	if canceled > 0 {
		w.logger.InfoContext(ctx, "Auto-cancel sweep finished",
			slog.Int64("job_id", job.ID),
			slog.Int("canceled", canceled),
			slog.Time("now", now),
		)
	}
	return nil
}

// Timeout bounds a single sweep.
func (w *AutoCancelSweepWorker) Timeout(*river.Job[AutoCancelSweepJob]) time.Duration {
	return 2 * time.Minute
}
