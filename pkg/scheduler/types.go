package scheduler

import "context"

// Work is a unit of work executed by one of the scheduler's workers.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the pending result of a Work submitted with AddWork.
type Future[T any] struct {
	c      chan T
	cancel context.CancelFunc
}

func NewFuture[T any](c chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C receives exactly one value once the work is done.
func (f *Future[T]) C() <-chan T {
	return f.c
}

// Stop cancels the context handed to the work.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the work is done or ctx is cancelled.
// The work keeps running when ctx is cancelled first.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-f.c:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

type fifo[T any] []T

func (q *fifo[T]) Len() int { return len(*q) }

func (q *fifo[T]) Push(t T) {
	*q = append(*q, t)
}

func (q *fifo[T]) Pop() T {
	old := *q
	x := old[0]
	var zero T
	old[0] = zero
	*q = old[1:]
	return x
}
