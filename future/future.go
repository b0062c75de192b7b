package future

import (
	"context"
	"sync"
	"time"
)

// Future represents the eventual result of an asynchronous computation.
// A Future resolves exactly once; later resolution attempts are ignored.
type Future[T any] struct {
	done chan struct{}
	once sync.Once

	mu        sync.Mutex
	value     T
	err       error
	callbacks []func(T, error)
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn in a new goroutine and returns a Future that resolves with its
// result. A pre-canceled context resolves the future immediately with the
// context error without invoking fn.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	go func() {
		if err := ctx.Err(); err != nil {
			var zero T
			f.resolve(zero, err)
			return
		}
		v, err := fn(ctx)
		f.resolve(v, err)
	}()

	return f
}

// Pending returns an unresolved Future together with its resolve function.
// Useful for adapting callback-based APIs and for deterministic tests.
// The resolve function is idempotent; only the first call takes effect.
func Pending[T any]() (*Future[T], func(T, error)) {
	f := newFuture[T]()
	return f, f.resolve
}

// Resolved returns a Future that is already resolved with the given value.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, nil)
	return f
}

// Failed returns a Future that is already resolved with the given error.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.resolve(zero, err)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.mu.Lock()
		f.value = v
		f.err = err
		close(f.done)
		cbs := f.callbacks
		f.callbacks = nil
		f.mu.Unlock()

		// Callbacks run outside the lock so they may safely inspect the future.
		for _, cb := range cbs {
			cb(v, err)
		}
	})
}

// Await blocks until the future resolves and returns its result and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for resolution up to the given timeout.
// Returns ErrTimeout if the future has not resolved in time.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// Done returns a channel closed when the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the future has resolved without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// OnComplete registers cb to run when the future resolves. If the future is
// already resolved, cb runs synchronously on the calling goroutine; otherwise
// it runs on the resolving goroutine. Nil callbacks are ignored.
func (f *Future[T]) OnComplete(cb func(T, error)) {
	if cb == nil {
		return
	}

	f.mu.Lock()
	select {
	case <-f.done:
		v, err := f.value, f.err
		f.mu.Unlock()
		cb(v, err)
		return
	default:
	}
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
}
