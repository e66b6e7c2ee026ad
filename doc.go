// Package threadpool provides an elastic pool of background workers for Go.
//
// The pool grows on demand up to a configured ceiling, shrinks back toward a
// floor when idle, queues excess jobs in strict FIFO order, and aborts
// outstanding work on shutdown instead of draining it. It was built as the
// background-work engine of a UI application framework, where view-layer
// components offload slow operations without ever blocking the main thread.
//
// # Quick Start
//
// Create a pool with a floor of 1 thread and a ceiling of 4:
//
//	pool, err := threadpool.NewThreadPool(1, 4)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	pool.Submit(threadpool.NewFuncJob(func(ctx context.Context) error {
//		// Your code here - runs on a background worker
//		return nil
//	}))
//
// Or initialize the global pool at application startup:
//
//	threadpool.InitGlobalThreadPool(1, 4)
//	defer threadpool.ShutdownGlobalThreadPool()
//
// # Key Concepts
//
// Job: an externally supplied unit of work with cooperative cancellation.
// Run executes once on a worker's goroutine; RequestStop is an advisory
// signal the job honors on its own schedule. FuncJob adapts a plain
// func(context.Context) error to the capability.
//
// ThreadPool: the coordinator owning the runners and the pending-job queue.
// Submitting to a saturated pool queues the job; a worker finishing with an
// empty queue is parked idle or, if the pool is above its floor, terminated.
//
// # Failure Isolation
//
// A job that returns an error or panics never takes its worker down. The
// failure is reported through the pool's FaultHandler (grip-backed by
// default) and the worker moves on to the next job.
//
// # Shutdown
//
// Close is a hard abort, not a graceful drain: queued jobs are discarded,
// running jobs receive RequestStop, and Close returns without waiting for
// them. A pool that is garbage collected without Close behaves the same way,
// so workers are never leaked.
//
// # Example
//
//	import (
//		"context"
//		threadpool "github.com/calldwell/go-thread-pool"
//	)
//
//	func main() {
//		pool, _ := threadpool.NewThreadPool(1, 4)
//		defer pool.Close()
//
//		for _, url := range urls {
//			pool.Submit(threadpool.NewFuncJob(func(ctx context.Context) error {
//				return fetch(ctx, url)
//			}))
//		}
//	}
package threadpool
