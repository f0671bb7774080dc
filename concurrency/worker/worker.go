package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull = errors.New("task queue is full")
	ErrStopped   = errors.New("worker pool is stopped")
)

// Config represents pool configuration
type Config struct {
	MaxWorkers  int           // number of workers
	QueueSize   int           // task queue size
	TaskTimeout time.Duration // timeout for a single task, 0 disables it
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers: 4,
		QueueSize:  1024,
	}
}

// Validate validates configuration
func (cfg *Config) Validate() error {
	if cfg.MaxWorkers < 1 {
		return errors.New("max workers must be greater than 0")
	}
	if cfg.QueueSize < 1 {
		return errors.New("queue size must be greater than 0")
	}
	if cfg.TaskTimeout < 0 {
		return errors.New("task timeout must be greater than or equal to 0")
	}
	return nil
}

// Task is a unit of work run by the pool.
type Task func(ctx context.Context) error

// ErrorHandler receives the error of every failed task.
type ErrorHandler func(err error)

// Metrics tracks pool's operational metrics
type Metrics struct {
	ActiveWorkers  atomic.Int64
	PendingTasks   atomic.Int64
	CompletedTasks atomic.Int64
	FailedTasks    atomic.Int64
	DroppedTasks   atomic.Int64
	ProcessingTime atomic.Int64 // nanoseconds
}

// Pool runs submitted tasks on a fixed set of workers. Submit never blocks:
// a full queue rejects the task.
type Pool struct {
	maxWorkers  int
	queueSize   int
	taskTimeout time.Duration
	onError     ErrorHandler

	tasks    chan Task
	mu       sync.RWMutex
	stopped  bool
	workers  sync.WaitGroup
	inflight sync.WaitGroup

	metrics *Metrics
}

// NewPool creates a new worker pool
//
// Usage:
//
//	pool := worker.NewPool(&worker.Config{MaxWorkers: 4, QueueSize: 256}, func(err error) {
//	    log.Printf("task failed: %v", err)
//	})
//	pool.Start()
//	defer pool.Stop(context.Background())
//
//	if err := pool.Submit(func(ctx context.Context) error {
//	    return store.Write(ctx, p)
//	}); err != nil {
//	    // queue full or pool stopped
//	}
func NewPool(cfg *Config, onError ErrorHandler) *Pool {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if onError == nil {
		onError = func(error) {}
	}

	return &Pool{
		maxWorkers:  cfg.MaxWorkers,
		queueSize:   cfg.QueueSize,
		taskTimeout: cfg.TaskTimeout,
		onError:     onError,
		tasks:       make(chan Task, cfg.QueueSize),
		metrics:     &Metrics{},
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.workers.Add(1)
		go p.worker()
	}
}

// Submit queues a task
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.metrics.DroppedTasks.Add(1)
		return ErrStopped
	}

	p.inflight.Add(1)
	select {
	case p.tasks <- task:
		p.metrics.PendingTasks.Add(1)
		return nil
	default:
		p.inflight.Done()
		p.metrics.DroppedTasks.Add(1)
		return ErrQueueFull
	}
}

// Wait blocks until every task submitted so far has finished.
func (p *Pool) Wait() {
	p.inflight.Wait()
}

// Stop stops accepting tasks, lets the workers drain the queue and waits
// for them until ctx is done.
func (p *Pool) Stop(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (p *Pool) worker() {
	defer p.workers.Done()

	for task := range p.tasks {
		p.processTask(task)
	}
}

func (p *Pool) processTask(task Task) {
	start := time.Now()
	p.metrics.ActiveWorkers.Add(1)
	p.metrics.PendingTasks.Add(-1)

	defer func() {
		p.metrics.ActiveWorkers.Add(-1)
		p.metrics.ProcessingTime.Add(time.Since(start).Nanoseconds())
		if r := recover(); r != nil {
			p.metrics.FailedTasks.Add(1)
			p.onError(fmt.Errorf("task panicked: %v", r))
		}
		p.inflight.Done()
	}()

	ctx := context.Background()
	if p.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.taskTimeout)
		defer cancel()
	}

	if err := task(ctx); err != nil {
		p.metrics.FailedTasks.Add(1)
		p.onError(err)
		return
	}
	p.metrics.CompletedTasks.Add(1)
}

// GetMetrics returns the current metrics
func (p *Pool) GetMetrics() map[string]int64 {
	return map[string]int64{
		"active_workers":  p.metrics.ActiveWorkers.Load(),
		"pending_tasks":   p.metrics.PendingTasks.Load(),
		"completed_tasks": p.metrics.CompletedTasks.Load(),
		"failed_tasks":    p.metrics.FailedTasks.Load(),
		"dropped_tasks":   p.metrics.DroppedTasks.Load(),
		"processing_time": p.metrics.ProcessingTime.Load(),
	}
}

// IsBusy returns whether the pool is saturated
func (p *Pool) IsBusy() bool {
	return p.metrics.ActiveWorkers.Load() >= int64(p.maxWorkers) ||
		p.metrics.PendingTasks.Load() >= int64(p.queueSize)
}
