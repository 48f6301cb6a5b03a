package matchqueue

// AutoCancelSweepJob asks a worker to cancel pending matches that missed
// their confirmation deadline.
type AutoCancelSweepJob struct{}

// Kind returns the job type identifier for River
func (AutoCancelSweepJob) Kind() string { return "match_auto_cancel_sweep" }

// QueueName is the River queue the sweep runs on.
const QueueName = "match"
