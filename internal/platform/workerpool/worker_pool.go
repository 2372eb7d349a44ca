// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"sync"
	"time"

	"openhours/internal/platform/logx"
)

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute ejecuta la tarea
	Execute(ctx context.Context) error

	// Priority retorna la prioridad de la tarea (mayor = más prioritario)
	Priority() int

	// Name retorna el nombre de la tarea
	Name() string
}

// Scheduler define la estrategia de scheduling.
type Scheduler interface {
	// Schedule ordena las tareas según la estrategia
	Schedule(tasks []Task) []Task

	// Name retorna el nombre del scheduler
	Name() string
}

// WorkerPool ejecuta lotes de tareas con concurrencia acotada. Cada llamada
// a Run arranca y detiene sus propios workers, así que un pool puede
// reutilizarse desde varias goroutines.
type WorkerPool struct {
	workers   int
	scheduler Scheduler
	logger    logx.Logger
}

// TaskResult representa el resultado de una tarea. Index es la posición de
// la tarea en el slice pasado a Run.
type TaskResult struct {
	Index    int
	Task     Task
	Error    error
	Duration time.Duration
}

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	Workers   int
	Scheduler Scheduler
	Logger    logx.Logger
}

// NewWorkerPool crea un nuevo worker pool.
func NewWorkerPool(cfg WorkerPoolConfig) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewPriorityScheduler()
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	return &WorkerPool{
		workers:   cfg.Workers,
		scheduler: cfg.Scheduler,
		logger:    cfg.Logger.With("component", "worker-pool"),
	}
}

// job wraps a task with its input position so schedulers can reorder freely.
type job struct {
	Task
	index int
}

// Run executes every task and returns one result per task, ordered by
// Index. Tasks not started before ctx is done get ctx.Err() as their error.
func (wp *WorkerPool) Run(ctx context.Context, tasks []Task) []TaskResult {
	results := make([]TaskResult, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	wrapped := make([]Task, len(tasks))
	for i, t := range tasks {
		wrapped[i] = &job{Task: t, index: i}
		results[i] = TaskResult{Index: i, Task: t, Error: ctx.Err()}
	}

	scheduled := wp.scheduler.Schedule(wrapped)
	workers := min(wp.workers, len(tasks))

	wp.logger.Debug("running tasks",
		"total", len(tasks),
		"workers", workers,
		"scheduler", wp.scheduler.Name(),
	)

	queue := make(chan *job)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range queue {
				results[j.index] = wp.execute(ctx, workerID, j)
			}
		}(w)
	}

feed:
	for _, t := range scheduled {
		select {
		case queue <- t.(*job):
		case <-ctx.Done():
			wp.logger.Warn("context done before all tasks were queued")
			break feed
		}
	}
	close(queue)
	wg.Wait()

	return results
}

// execute ejecuta una tarea individual.
func (wp *WorkerPool) execute(ctx context.Context, workerID int, j *job) TaskResult {
	start := time.Now()
	err := j.Execute(ctx)
	duration := time.Since(start)

	wp.logger.Debug("task completed",
		"worker_id", workerID,
		"task", j.Name(),
		"duration_ms", duration.Milliseconds(),
		"error", err != nil,
	)

	return TaskResult{Index: j.index, Task: j.Task, Error: err, Duration: duration}
}

// Stats retorna estadísticas del worker pool.
func (wp *WorkerPool) Stats() WorkerPoolStats {
	return WorkerPoolStats{
		Workers:       wp.workers,
		SchedulerName: wp.scheduler.Name(),
	}
}

// WorkerPoolStats contiene estadísticas del worker pool.
type WorkerPoolStats struct {
	Workers       int
	SchedulerName string
}
