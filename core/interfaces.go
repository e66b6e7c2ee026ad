package core

import (
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// =============================================================================
// FaultHandler: Interface for handling job failures
// =============================================================================

// FaultHandler is the top-level fault channel for job execution failures.
// A job that returns an error or panics is reported here; the failure is
// isolated per job and never terminates the runner's goroutine.
//
// Implementations must be thread-safe as they may be called concurrently
// from multiple runners.
type FaultHandler interface {
	// HandleJobError is called when a job's Run returns a non-nil error.
	HandleJobError(poolID string, err error)

	// HandleJobPanic is called when a job panics during Run.
	//
	// Parameters:
	// - poolID: The ID of the pool whose runner executed the job
	// - panicInfo: The panic value recovered from the job
	// - stackTrace: The stack trace at the time of panic
	HandleJobPanic(poolID string, panicInfo any, stackTrace []byte)
}

// DefaultFaultHandler reports faults through grip.
type DefaultFaultHandler struct{}

// HandleJobError logs the job error.
func (h *DefaultFaultHandler) HandleJobError(poolID string, err error) {
	grip.Error(message.WrapError(err, message.Fields{
		"message": "pool job failed",
		"pool":    poolID,
	}))
}

// HandleJobPanic logs the panic with its stack trace.
func (h *DefaultFaultHandler) HandleJobPanic(poolID string, panicInfo any, stackTrace []byte) {
	grip.Critical(message.Fields{
		"message": "pool job panicked",
		"pool":    poolID,
		"panic":   panicInfo,
		"stack":   string(stackTrace),
	})
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Fault kinds reported to Metrics.RecordJobFault.
const (
	FaultKindError = "error"
	FaultKindPanic = "panic"
)

// Rejection reasons reported to Metrics.RecordJobRejected.
const (
	RejectReasonClosed      = "closed"
	RejectReasonThreadStart = "thread_start"
)

// Metrics defines the interface for collecting pool execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid impacting job execution
// performance; they may be called while the pool lock is held.
type Metrics interface {
	// RecordJobDuration records how long a job took to execute.
	RecordJobDuration(poolID string, duration time.Duration)

	// RecordJobFault records an isolated job failure (FaultKindError or
	// FaultKindPanic).
	RecordJobFault(poolID string, kind string)

	// RecordJobRejected records that a submission was rejected
	// (RejectReasonClosed, RejectReasonThreadStart).
	RecordJobRejected(poolID string, reason string)

	// RecordQueueDepth records the current number of queued jobs.
	RecordQueueDepth(poolID string, depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordJobDuration is a no-op.
func (m *NilMetrics) RecordJobDuration(poolID string, duration time.Duration) {}

// RecordJobFault is a no-op.
func (m *NilMetrics) RecordJobFault(poolID string, kind string) {}

// RecordJobRejected is a no-op.
func (m *NilMetrics) RecordJobRejected(poolID string, reason string) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(poolID string, depth int) {}

// =============================================================================
// ThreadPoolConfig: Configuration for ThreadPool
// =============================================================================

// ThreadPoolConfig holds configuration options for ThreadPool.
// All fields are optional; if not provided, default implementations will be used.
type ThreadPoolConfig struct {
	// ID identifies the pool in logs and metrics. Defaults to a generated ID.
	ID string

	// Logger receives pool lifecycle events. Defaults to a GripLogger.
	Logger Logger

	// Metrics is called to record pool execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// FaultHandler is called when a job fails. Defaults to DefaultFaultHandler.
	FaultHandler FaultHandler

	// spawnThread launches a runner's goroutine. Overridable in tests to
	// exercise the thread-start failure path; nil means `go fn()`.
	spawnThread func(fn func()) error
}

// DefaultThreadPoolConfig returns a config with default handlers.
func DefaultThreadPoolConfig() *ThreadPoolConfig {
	return &ThreadPoolConfig{
		Logger:       NewGripLogger("threadpool"),
		Metrics:      &NilMetrics{},
		FaultHandler: &DefaultFaultHandler{},
	}
}
