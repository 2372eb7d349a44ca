// internal/platform/workerpool/worker_pool_test.go
package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"openhours/internal/platform/logx"
	"openhours/internal/testutil"
)

type fakeTask struct {
	name     string
	priority int
	run      func(ctx context.Context) error
}

func (f *fakeTask) Execute(ctx context.Context) error {
	if f.run != nil {
		return f.run(ctx)
	}
	return nil
}
func (f *fakeTask) Priority() int { return f.priority }
func (f *fakeTask) Name() string  { return f.name }

func TestWorkerPool_Run_ResultsFollowInputOrder(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{Workers: 3, Logger: logx.Discard()})

	boom := errors.New("boom")
	tasks := []Task{
		&fakeTask{name: "a", priority: 1},
		&fakeTask{name: "b", priority: 9, run: func(context.Context) error { return boom }},
		&fakeTask{name: "c", priority: 5},
	}

	results := pool.Run(context.Background(), tasks)

	testutil.AssertLen(t, results, 3, "one result per task")
	for i, r := range results {
		testutil.AssertEqual(t, r.Index, i, "index matches position")
		testutil.AssertEqual(t, r.Task.Name(), tasks[i].Name(), "task matches position")
	}
	testutil.AssertErrorIs(t, results[1].Error, boom, "error kept on its task")
	testutil.AssertNoError(t, results[0].Error, "a succeeded")
}

func TestWorkerPool_Run_BoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{Workers: 2, Logger: logx.Discard()})

	var inFlight, peak int32
	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = &fakeTask{name: "t", run: func(context.Context) error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		}}
	}

	pool.Run(context.Background(), tasks)

	testutil.AssertTrue(t, atomic.LoadInt32(&peak) <= 2, "never more than 2 concurrent tasks")
}

func TestWorkerPool_Run_CancelledContext(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{Workers: 1, Logger: logx.Discard()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	tasks := []Task{
		&fakeTask{name: "a", run: func(context.Context) error { atomic.AddInt32(&ran, 1); return nil }},
		&fakeTask{name: "b", run: func(context.Context) error { atomic.AddInt32(&ran, 1); return nil }},
	}

	results := pool.Run(ctx, tasks)

	testutil.AssertLen(t, results, 2, "results for every task")
	for _, r := range results {
		if r.Error == nil {
			continue
		}
		testutil.AssertErrorIs(t, r.Error, context.Canceled, "unstarted tasks carry ctx error")
	}
}

func TestWorkerPool_Run_Empty(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{Logger: logx.Discard()})
	testutil.AssertLen(t, pool.Run(context.Background(), nil), 0, "no results")
	testutil.AssertEqual(t, pool.Stats().Workers, 4, "default workers")
}

func TestPriorityScheduler_StableOrder(t *testing.T) {
	tasks := []Task{
		&fakeTask{name: "low", priority: 1},
		&fakeTask{name: "high-1", priority: 5},
		&fakeTask{name: "high-2", priority: 5},
	}

	got := NewPriorityScheduler().Schedule(tasks)

	testutil.AssertEqual(t, got[0].Name(), "high-1", "highest first")
	testutil.AssertEqual(t, got[1].Name(), "high-2", "ties keep input order")
	testutil.AssertEqual(t, got[2].Name(), "low", "lowest last")
}

func TestFIFOScheduler(t *testing.T) {
	tasks := []Task{&fakeTask{name: "a", priority: 1}, &fakeTask{name: "b", priority: 9}}
	got := NewFIFOScheduler().Schedule(tasks)
	testutil.AssertEqual(t, got[0].Name(), "a", "keeps input order")
}
