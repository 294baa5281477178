// Package scheduler implements the worker pool that runs action invocations.
//
// A fixed number of workers pull work from a FIFO queue. AddWork returns a
// Future immediately; the result arrives on Future.C() exactly once.
//
//	AddWork(fn) ──► pending queue ──► dispatch() ──► idle worker ──► Future.C()
//	                                      ▲                │
//	                                      └──── done ◄─────┘
//
// # Cancellation
//
// Every work gets a context derived from the scheduler's main context:
//   - Future.Stop() cancels one work
//   - Scheduler.Close() cancels all of them
//
// Future.Wait(ctx) stops waiting when ctx is done but leaves the work
// running. Action invocations rely on this: a client that goes away does
// not interrupt an action that has side effects.
//
// # Panics
//
// A panicking work is reported as an error result ("worker panicked: ...")
// and the worker goes back to the pool.
//
// # Shutdown
//
// Close() is idempotent. It cancels the main context, fails the queued work
// with context.Canceled and waits for the running work to return.
package scheduler
