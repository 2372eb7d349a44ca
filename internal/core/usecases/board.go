// internal/core/usecases/board.go
package usecases

import (
	"context"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/platform/logx"
	"openhours/internal/platform/workerpool"
)

// BoardEntry is one facility's line on the status board.
type BoardEntry struct {
	Report *domain.StatusReport
	Err    error
}

// Board checks many facilities at the same instant, concurrently.
type Board struct {
	service *StatusService
	pool    *workerpool.WorkerPool
	logger  logx.Logger
}

// NewBoard crea un Board con workers concurrentes.
func NewBoard(service *StatusService, workers int, logger logx.Logger) *Board {
	if logger == nil {
		logger = logx.New()
	}
	return &Board{
		service: service,
		pool: workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
			Workers:   workers,
			Scheduler: workerpool.NewFIFOScheduler(),
			Logger:    logger,
		}),
		logger: logger.With("component", "board"),
	}
}

// CheckAll evaluates every facility against the same instant and returns
// entries in input order. A failing facility does not affect the others.
func (b *Board) CheckAll(ctx context.Context, facilities []domain.Facility) []BoardEntry {
	return b.CheckAllAt(ctx, facilities, b.service.Now())
}

// CheckAllAt is CheckAll against a fixed instant.
func (b *Board) CheckAllAt(ctx context.Context, facilities []domain.Facility, now time.Time) []BoardEntry {
	tasks := make([]workerpool.Task, len(facilities))
	checks := make([]*checkTask, len(facilities))
	for i, f := range facilities {
		checks[i] = &checkTask{service: b.service, facility: f, now: now, priority: len(facilities) - i}
		tasks[i] = checks[i]
	}

	start := time.Now()
	results := b.pool.Run(ctx, tasks)

	entries := make([]BoardEntry, len(facilities))
	failed := 0
	for i, r := range results {
		entries[i] = BoardEntry{Report: checks[i].report, Err: r.Error}
		if r.Error != nil {
			failed++
		}
	}

	b.logger.Info("board checked",
		"facilities", len(facilities),
		"failed", failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return entries
}

// checkTask adapta una consulta de estado a workerpool.Task.
type checkTask struct {
	service  *StatusService
	facility domain.Facility
	now      time.Time
	priority int

	report *domain.StatusReport
}

func (t *checkTask) Execute(ctx context.Context) error {
	report, err := t.service.CheckAt(ctx, t.facility, t.now)
	t.report = report
	return err
}

func (t *checkTask) Priority() int { return t.priority }
func (t *checkTask) Name() string  { return "check:" + t.facility.ID }
