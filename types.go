package threadpool

import "github.com/calldwell/go-thread-pool/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the threadpool package for most use cases.

// Job is the unit of background work with cooperative cancellation
type Job = core.Job

// FuncJob adapts a context-aware function to the Job capability
type FuncJob = core.FuncJob

// ThreadPool is the elastic worker pool
type ThreadPool = core.ThreadPool

// ThreadPoolConfig holds optional pool configuration (logger, metrics, faults)
type ThreadPoolConfig = core.ThreadPoolConfig

// PoolStats is a consistent snapshot of a pool's state
type PoolStats = core.PoolStats

// Logger is the structured logging interface used by the pool
type Logger = core.Logger

// Field is a key-value pair for structured logging
type Field = core.Field

// Metrics is the observability interface for pool execution metrics
type Metrics = core.Metrics

// FaultHandler is the top-level fault channel for job failures
type FaultHandler = core.FaultHandler

// ErrPoolClosed is returned by Submit after the pool has been closed
var ErrPoolClosed = core.ErrPoolClosed

// NewThreadPool creates a pool with the given thread bounds.
// See core.NewThreadPool for the constraint rules.
func NewThreadPool(minThreads, maxThreads int) (*ThreadPool, error) {
	return core.NewThreadPool(minThreads, maxThreads)
}

// NewThreadPoolWithConfig creates a pool with explicit configuration.
func NewThreadPoolWithConfig(minThreads, maxThreads int, config *ThreadPoolConfig) (*ThreadPool, error) {
	return core.NewThreadPoolWithConfig(minThreads, maxThreads, config)
}

// DefaultThreadPoolConfig returns a config with default handlers.
var DefaultThreadPoolConfig = core.DefaultThreadPoolConfig

// NewFuncJob wraps a context-aware function as a Job.
var NewFuncJob = core.NewFuncJob

// NewFuncJobWithContext is NewFuncJob with an explicit parent context.
var NewFuncJobWithContext = core.NewFuncJobWithContext

// F creates a structured logging Field.
var F = core.F
