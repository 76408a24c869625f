// Package worker runs grading jobs concurrently and rate-limits outbound calls.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Task computes one result. It receives the pool context and should return
// promptly once that context is cancelled
type Task[T any] func(ctx context.Context) T

// ProgressFunc is called after each task finishes with the number done so far
type ProgressFunc func(done, total int)

// Pool runs tasks on a fixed number of goroutines and keeps results in
// submission order
type Pool[T any] struct {
	workers  int
	progress ProgressFunc
}

// NewPool creates a pool with the given number of workers (at least one)
func NewPool[T any](workers int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[T]{workers: workers}
}

// OnProgress registers a callback invoked from worker goroutines
func (p *Pool[T]) OnProgress(fn ProgressFunc) *Pool[T] {
	p.progress = fn
	return p
}

// Run executes every task and returns their results indexed like tasks.
// Every task runs, including after ctx is cancelled, so no slot is left zero
func (p *Pool[T]) Run(ctx context.Context, tasks []Task[T]) []T {
	results := make([]T, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	indexes := make(chan int)
	var done atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = tasks[i](ctx)
				n := done.Add(1)
				if p.progress != nil {
					p.progress(int(n), len(tasks))
				}
			}
		}()
	}

	for i := range tasks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return results
}

// Map applies fn to every item on the pool and returns results in item order
func Map[In, Out any](ctx context.Context, p *Pool[Out], items []In, fn func(context.Context, In) Out) []Out {
	tasks := make([]Task[Out], len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) Out { return fn(ctx, item) }
	}
	return p.Run(ctx, tasks)
}
