package scheduler

import (
	"context"
	"fmt"
	"sync"
)

type workRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

type worker struct {
	done chan<- worker
	wg   *sync.WaitGroup
}

func (w worker) Work(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		w.wg.Done()
		w.done <- w
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}

// Scheduler runs submitted work on a fixed pool of workers in FIFO order.
type Scheduler struct {
	idle       *fifo[worker]
	pending    *fifo[workRequest]
	work       chan workRequest
	done       chan worker
	close      chan struct{}
	stopped    chan struct{}
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler(nbWorkers int) *Scheduler {
	if nbWorkers < 1 {
		nbWorkers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		idle:       &fifo[worker]{},
		pending:    &fifo[workRequest]{},
		work:       make(chan workRequest),
		done:       make(chan worker, nbWorkers),
		close:      make(chan struct{}),
		stopped:    make(chan struct{}),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.idle.Push(worker{done: s.done, wg: &s.wg})
	}

	go s.run()
	return s
}

// AddWork queues w and returns its future. After Close the future
// resolves immediately with context.Canceled.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case <-s.mainCtx.Done():
		c <- Result[any]{Err: context.Canceled}
	case s.work <- workRequest{fn: w, c: c, ctx: ctx}:
	}

	return NewFuture(c, cancel)
}

// Close cancels all work and waits for the running ones to return.
// Queued work that never started resolves with context.Canceled.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()
		close(s.close)
		<-s.stopped
	})
}

func (s *Scheduler) run() {
	defer close(s.stopped)
	for {
		select {
		case r := <-s.work:
			s.pending.Push(r)
			s.dispatch()
		case w := <-s.done:
			s.idle.Push(w)
			s.dispatch()
		case <-s.close:
			s.cancelPending()
			s.wg.Wait()
			return
		}
	}
}

// dispatch hands pending work to idle workers until one side runs out.
// Once the scheduler is closing nothing new is started.
func (s *Scheduler) dispatch() {
	if s.mainCtx.Err() != nil {
		s.cancelPending()
		return
	}
	for s.idle.Len() > 0 && s.pending.Len() > 0 {
		r := s.pending.Pop()
		w := s.idle.Pop()
		s.wg.Add(1)
		go w.Work(r)
	}
}

func (s *Scheduler) cancelPending() {
	for s.pending.Len() > 0 {
		s.pending.Pop().c <- Result[any]{Err: context.Canceled}
	}
}
