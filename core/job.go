package core

import (
	"context"

	"github.com/google/uuid"
)

// =============================================================================
// Job: The unit of background work consumed by a ThreadPool
// =============================================================================

// Job is a unit of work that can run once and can be asked to stop early.
//
// Jobs are supplied by callers; the pool never constructs them and only holds
// a reference for the duration of execution. Run executes synchronously on a
// runner's goroutine and returns when the work is done. A non-nil error is
// reported through the pool's FaultHandler and never terminates the runner.
//
// RequestStop is an advisory cancellation signal. The job decides how and
// when to honor it; there is no guarantee of immediate termination. It must
// be safe to call concurrently with Run executing on another goroutine and
// must not block. Any blocking wait inside Run must itself be interruptible
// through the same mechanism.
type Job interface {
	Run() error
	RequestStop()
}

// FuncJob adapts a context-aware function to the Job capability.
// RequestStop cancels the context passed to the function.
type FuncJob struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	fn     func(ctx context.Context) error
}

var _ Job = (*FuncJob)(nil)

// NewFuncJob wraps fn as a Job. The function receives a context that is
// canceled when RequestStop is called (or when the pool aborts during
// shutdown).
func NewFuncJob(fn func(ctx context.Context) error) *FuncJob {
	return NewFuncJobWithContext(context.Background(), fn)
}

// NewFuncJobWithContext is like NewFuncJob but derives the job's context from
// parent, so callers can tie job cancellation to their own lifecycle.
func NewFuncJobWithContext(parent context.Context, fn func(ctx context.Context) error) *FuncJob {
	ctx, cancel := context.WithCancel(parent)
	return &FuncJob{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		fn:     fn,
	}
}

// ID returns the job's unique identifier, useful for log correlation.
func (j *FuncJob) ID() string {
	return j.id
}

// Run executes the wrapped function with the job's context.
func (j *FuncJob) Run() error {
	return j.fn(j.ctx)
}

// RequestStop cancels the job's context. Safe to call from any goroutine,
// any number of times.
func (j *FuncJob) RequestStop() {
	j.cancel()
}
