package concurrency

import (
	"context"
	"sync"
)

// Result is the outcome of one settled task.
type Result[T any] struct {
	Value T
	Err   error
}

// Settle starts every task at once, waits for all of them to finish and
// returns their outcomes in submission order. A failing task never stops the
// others. When limiter is non-nil each task first acquires one of its slots;
// a task that cannot acquire one settles with the acquisition error.
func Settle[T any](ctx context.Context, limiter *Manager, tasks ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(tasks))

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task func(context.Context) (T, error)) {
			defer wg.Done()
			if limiter != nil {
				if err := limiter.Acquire(ctx); err != nil {
					results[i].Err = err
					return
				}
				defer limiter.Release()
			}
			results[i].Value, results[i].Err = task(ctx)
		}(i, task)
	}
	wg.Wait()

	return results
}

// Fulfilled keeps the values of the tasks that succeeded, in order.
func Fulfilled[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			values = append(values, r.Value)
		}
	}
	return values
}

// Rejected returns the errors of the tasks that failed, in order.
func Rejected[T any](results []Result[T]) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
