package match

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	matchqueue "github.com/funfirstplay/matchup/app/modules/match/infrastructure/queue"
	"github.com/funfirstplay/matchup/app/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeQueueService struct {
	mu               sync.Mutex
	trace            []string
	TriggerSweepFunc func(ctx context.Context) error
}

func (f *FakeQueueService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeQueueService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeQueueService) TriggerSweep(ctx context.Context) error {
	f.record("TriggerSweep")
	if f.TriggerSweepFunc != nil {
		return f.TriggerSweepFunc(ctx)
	}
	return nil
}

func (f *FakeQueueService) HealthCheck(ctx context.Context) error {
	f.record("HealthCheck")
	return nil
}

func (f *FakeQueueService) Start(ctx context.Context) error {
	f.record("Start")
	return nil
}

func (f *FakeQueueService) Stop(ctx context.Context) error {
	f.record("Stop")
	return nil
}

var _ matchqueue.QueueService = (*FakeQueueService)(nil)

func newTestModule(queue matchqueue.QueueService) *Module {
	m := &Module{
		QueueService:  queue,
		observability: observability.Init(observability.Config{Output: io.Discard}),
	}
	m.runCtx, m.cancelFunc = context.WithCancel(context.Background())
	return m
}

func waitGroup(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("module did not stop")
	}
}

func TestModuleLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		sweepErr  error
		wantTrace []string
	}{
		{
			name:      "startup sweep enqueued",
			wantTrace: []string{"Start", "TriggerSweep", "Stop"},
		},
		{
			name:      "startup sweep failure keeps running",
			sweepErr:  errors.New("insert failed"),
			wantTrace: []string{"Start", "TriggerSweep", "Stop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swept := make(chan struct{})
			queue := &FakeQueueService{
				TriggerSweepFunc: func(ctx context.Context) error {
					close(swept)
					return tt.sweepErr
				},
			}
			m := newTestModule(queue)

			var wg sync.WaitGroup
			wg.Add(1)
			go m.Run(context.Background(), &wg)

			select {
			case <-swept:
			case <-time.After(5 * time.Second):
				t.Fatal("startup sweep was not triggered")
			}

			require.NoError(t, m.Close(context.Background()))
			waitGroup(t, &wg)

			assert.Equal(t, tt.wantTrace, queue.Trace())
		})
	}
}

func TestModuleCloseBeforeRun(t *testing.T) {
	queue := &FakeQueueService{}
	m := newTestModule(queue)

	require.NoError(t, m.Close(context.Background()))

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(context.Background(), &wg)
	waitGroup(t, &wg)

	assert.Equal(t, []string{"Stop"}, queue.Trace())
}
