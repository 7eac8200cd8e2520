package pool

import (
	"context"
	"sync"
	"time"
)

// Future is the pending-result handle returned on task submission. It is
// resolved exactly once, either with a value or with an error, and all read
// methods observe that single resolution.
//
// Type parameters:
//   - R: The result type the future resolves with
type Future[R any] struct {
	result chan resolution[R]

	once sync.Once

	mu     sync.Mutex
	done   bool
	value  R
	err    error
	taskID int64
}

type resolution[R any] struct {
	value R
	err   error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{
		// Buffered so the coordinator can resolve without blocking.
		result: make(chan resolution[R], 1),
	}
}

// resolve completes the future. Subsequent calls are no-ops; the pool
// guarantees a single terminal resolution, the Once is the backstop.
func (f *Future[R]) resolve(value R, err error) {
	f.once.Do(func() {
		f.result <- resolution[R]{value: value, err: err}
	})
}

// TaskID returns the id of the task this future belongs to, or 0 for
// aggregate futures produced by SubmitBatch.
func (f *Future[R]) TaskID() int64 {
	return f.taskID
}

// Get blocks until the task resolves and returns its value or error.
// Repeated calls return the same result.
func (f *Future[R]) Get() (R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return f.value, f.err
	}

	r := <-f.result
	f.cache(r)
	return r.value, r.err
}

// GetWithContext blocks until the task resolves or ctx is done. A context
// error does not resolve the future; the task keeps running and a later Get
// still observes its real outcome.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return f.value, f.err
	}

	select {
	case r := <-f.result:
		f.cache(r)
		return r.value, r.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout is GetWithContext with a deadline relative to now.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

// IsReady reports whether the future has resolved, without blocking.
func (f *Future[R]) IsReady() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return true
	}

	select {
	case r := <-f.result:
		f.cache(r)
		return true
	default:
		return false
	}
}

// cache must be called with f.mu held.
func (f *Future[R]) cache(r resolution[R]) {
	f.value = r.value
	f.err = r.err
	f.done = true
}
