package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if err := (&Config{MaxWorkers: 0, QueueSize: 1}).Validate(); err == nil {
		t.Error("expected error for zero workers")
	}
	if err := (&Config{MaxWorkers: 1, QueueSize: 0}).Validate(); err == nil {
		t.Error("expected error for zero queue")
	}
}

func TestPoolRunsTasks(t *testing.T) {
	var failures []error
	var mu sync.Mutex
	p := NewPool(&Config{MaxWorkers: 2, QueueSize: 16}, func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	})
	p.Start()
	defer p.Stop(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		if err := p.Submit(func(context.Context) error { ran.Add(1); return nil }); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	boom := errors.New("boom")
	if err := p.Submit(func(context.Context) error { return boom }); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p.Wait()

	if got := ran.Load(); got != 5 {
		t.Errorf("ran = %d, want 5", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(failures) != 1 || !errors.Is(failures[0], boom) {
		t.Errorf("failures = %v, want [boom]", failures)
	}
	m := p.GetMetrics()
	if m["completed_tasks"] != 5 || m["failed_tasks"] != 1 {
		t.Errorf("metrics = %v", m)
	}
}

func TestPoolQueueFull(t *testing.T) {
	p := NewPool(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	block := make(chan struct{})
	started := make(chan struct{})
	p.Start()

	if err := p.Submit(func(context.Context) error { close(started); <-block; return nil }); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-started
	if err := p.Submit(func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Submit queued: %v", err)
	}
	if err := p.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Submit = %v, want ErrQueueFull", err)
	}

	close(block)
	p.Wait()
	p.Stop(context.Background())

	if err := p.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrStopped) {
		t.Errorf("Submit after Stop = %v, want ErrStopped", err)
	}
	if got := p.GetMetrics()["dropped_tasks"]; got != 2 {
		t.Errorf("dropped_tasks = %d, want 2", got)
	}
}

func TestPoolStopDrainsQueue(t *testing.T) {
	p := NewPool(&Config{MaxWorkers: 1, QueueSize: 8}, nil)
	var ran atomic.Int32
	for i := 0; i < 4; i++ {
		_ = p.Submit(func(context.Context) error { ran.Add(1); return nil })
	}
	p.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	p.Stop(ctx)

	if got := ran.Load(); got != 4 {
		t.Errorf("ran = %d, want 4", got)
	}
}

func TestPoolTaskTimeout(t *testing.T) {
	var got error
	done := make(chan struct{})
	p := NewPool(&Config{MaxWorkers: 1, QueueSize: 1, TaskTimeout: 10 * time.Millisecond}, func(err error) {
		got = err
		close(done)
	})
	p.Start()
	defer p.Stop(context.Background())

	_ = p.Submit(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	<-done

	if !errors.Is(got, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", got)
	}
}

func TestPoolRecoversPanics(t *testing.T) {
	errs := make(chan error, 1)
	p := NewPool(&Config{MaxWorkers: 1, QueueSize: 1}, func(err error) { errs <- err })
	p.Start()
	defer p.Stop(context.Background())

	_ = p.Submit(func(context.Context) error { panic("bad point") })
	p.Wait()

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected panic error")
		}
	default:
		t.Error("panic not reported")
	}
}
