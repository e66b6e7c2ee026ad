package core

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ThreadPool is an elastic pool of background runners. It grows on demand up
// to maxThreads, shrinks back toward minThreads when idle, queues excess
// jobs in strict FIFO order, and aborts outstanding work on Close.
//
// ThreadPool is a thin handle over the pool's internal state. Runners hold
// only a weak reference to that state, so dropping the last ThreadPool
// reference (even without calling Close) signals every runner to stop and no
// goroutines are leaked.
type ThreadPool struct {
	state   *poolState
	cleanup runtime.Cleanup
}

// poolState is the shared mutable state of a pool. Every collection below is
// guarded by mu; it is the single mutual-exclusion section for submit,
// completion, shutdown, and snapshot reads.
type poolState struct {
	id         string
	minThreads int
	maxThreads int

	logger  Logger
	metrics Metrics
	faults  FaultHandler
	spawn   func(fn func()) error

	mu     sync.Mutex
	idle   []*poolRunner // FIFO reuse order
	busy   map[*poolRunner]struct{}
	queued *jobQueue
	closed bool
}

// NewThreadPool creates a pool that keeps at least minThreads runners alive
// once they exist and never runs more than maxThreads jobs concurrently.
//
// Constraints: 0 <= minThreads <= maxThreads, maxThreads >= 1. Violations
// return an invalid-argument error and no pool is created.
func NewThreadPool(minThreads, maxThreads int) (*ThreadPool, error) {
	return NewThreadPoolWithConfig(minThreads, maxThreads, DefaultThreadPoolConfig())
}

// NewThreadPoolWithConfig is like NewThreadPool with explicit configuration.
// A nil config (or nil config fields) falls back to defaults.
func NewThreadPoolWithConfig(minThreads, maxThreads int, config *ThreadPoolConfig) (*ThreadPool, error) {
	if minThreads < 0 {
		return nil, errors.Errorf("minThreads must be >= 0, got %d", minThreads)
	}
	if maxThreads <= 0 {
		return nil, errors.Errorf("maxThreads must be > 0, got %d", maxThreads)
	}
	if maxThreads < minThreads {
		return nil, errors.Errorf("maxThreads (%d) must be >= minThreads (%d)", maxThreads, minThreads)
	}

	if config == nil {
		config = DefaultThreadPoolConfig()
	}

	st := &poolState{
		id:         config.ID,
		minThreads: minThreads,
		maxThreads: maxThreads,
		logger:     config.Logger,
		metrics:    config.Metrics,
		faults:     config.FaultHandler,
		spawn:      config.spawnThread,
		busy:       make(map[*poolRunner]struct{}),
		queued:     newJobQueue(),
	}
	if st.id == "" {
		st.id = fmt.Sprintf("pool-%s", uuid.NewString()[:8])
	}
	if st.logger == nil {
		st.logger = NewGripLogger("threadpool")
	}
	if st.metrics == nil {
		st.metrics = &NilMetrics{}
	}
	if st.faults == nil {
		st.faults = &DefaultFaultHandler{}
	}
	if st.spawn == nil {
		st.spawn = func(fn func()) error {
			go fn()
			return nil
		}
	}

	p := &ThreadPool{state: st}

	// Mirror destructor semantics: if the last handle is dropped without
	// Close, the runners still get their stop signal.
	p.cleanup = runtime.AddCleanup(p, func(st *poolState) { st.close() }, st)

	return p, nil
}

// ID returns the pool's identifier as used in logs and metrics.
func (p *ThreadPool) ID() string {
	return p.state.id
}

// MinThreads returns the configured lower thread bound.
func (p *ThreadPool) MinThreads() int {
	return p.state.minThreads
}

// MaxThreads returns the configured upper thread bound.
func (p *ThreadPool) MaxThreads() int {
	return p.state.maxThreads
}

// Submit hands a job to the pool for eventual asynchronous execution,
// exactly once, on some runner's goroutine. It never blocks waiting for
// execution.
//
// An idle runner is reused if one exists; otherwise a new runner is started
// if the pool is below maxThreads; otherwise the job is appended to the FIFO
// queue and runs once a runner frees up.
//
// Submit returns ErrPoolClosed after Close. If the runner's goroutine cannot
// be started the pool bookkeeping is rolled back and the failure is returned;
// the job is not queued, so the caller still owns it and may retry.
func (p *ThreadPool) Submit(job Job) error {
	return p.state.submit(job)
}

// BusyThreadCount returns the number of runners currently executing a job.
// Purely observational: the value may be stale the instant after it is read,
// but it is internally consistent at the instant of the read.
func (p *ThreadPool) BusyThreadCount() int {
	st := p.state
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.busy)
}

// IdleThreadCount returns the number of parked runners waiting for work.
func (p *ThreadPool) IdleThreadCount() int {
	st := p.state
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.idle)
}

// QueuedJobCount returns the number of jobs waiting for a free runner slot.
func (p *ThreadPool) QueuedJobCount() int {
	st := p.state
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.queued.Len()
}

// Stats returns a consistent snapshot of the pool's state.
func (p *ThreadPool) Stats() PoolStats {
	st := p.state
	st.mu.Lock()
	defer st.mu.Unlock()
	return PoolStats{
		ID:         st.id,
		MinThreads: st.minThreads,
		MaxThreads: st.maxThreads,
		Busy:       len(st.busy),
		Idle:       len(st.idle),
		Queued:     st.queued.Len(),
		Closed:     st.closed,
	}
}

// Close shuts the pool down hard. Every runner, idle and busy, is signaled
// to stop; busy runners forward the advisory cancellation to their current
// job. Pending queued jobs are discarded without ever starting. Close does
// not wait for in-flight jobs to return, so shutdown latency is bounded only
// by how quickly jobs notice cancellation.
//
// Close is idempotent and safe to call while jobs are outstanding. Submit
// returns ErrPoolClosed afterwards.
func (p *ThreadPool) Close() {
	p.cleanup.Stop()
	p.state.close()
}

func (st *poolState) submit(job Job) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		st.metrics.RecordJobRejected(st.id, RejectReasonClosed)
		return ErrPoolClosed
	}

	if len(st.idle) > 0 {
		// An idle runner is waiting. Give it the job; no thread creation.
		r := st.idle[0]
		st.idle[0] = nil
		st.idle = st.idle[1:]

		st.busy[r] = struct{}{}
		r.startJob(job)
		return nil
	}

	if len(st.busy) >= st.maxThreads {
		// Saturated. The job runs once a runner reports completion.
		st.queued.Push(job)
		st.metrics.RecordQueueDepth(st.id, st.queued.Len())
		st.logger.Debug("pool saturated, job queued",
			F("pool", st.id), F("queued", st.queued.Len()))
		return nil
	}

	// Start another runner.
	r := newPoolRunner(st)
	r.startJob(job)
	st.busy[r] = struct{}{}

	if err := st.spawn(r.loop); err != nil {
		// Roll back the bookkeeping and surface the failure. The job is not
		// queued: the caller keeps ownership and may retry.
		delete(st.busy, r)
		st.metrics.RecordJobRejected(st.id, RejectReasonThreadStart)
		st.logger.Error("could not start runner thread",
			F("pool", st.id), F("error", err))
		return errors.Wrap(err, "starting thread for new pool runner")
	}

	st.logger.Debug("runner started",
		F("pool", st.id), F("busy", len(st.busy)))
	return nil
}

// runnerFinished is the sole admission-control decision point, called by a
// runner after it finishes one job. It is evaluated atomically with respect
// to concurrent submits so a job can never be queued while a runner is sent
// to idle.
//
// Returns true if the runner should continue (it either got a new job or was
// parked idle) and false if it should terminate.
func (st *poolState) runnerFinished(r *poolRunner) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return false
	}

	if job, ok := st.queued.Pop(); ok {
		// Hand over the oldest queued job right away; the runner stays in
		// the busy set.
		st.metrics.RecordQueueDepth(st.id, st.queued.Len())
		r.startJob(job)
		return true
	}

	delete(st.busy, r)

	if len(st.busy) >= st.minThreads {
		// More threads than necessary. Let this one die.
		st.logger.Debug("surplus runner terminating",
			F("pool", st.id), F("busy", len(st.busy)), F("idle", len(st.idle)))
		return false
	}

	// Park the runner; it goes back to sleep until the next job.
	st.idle = append(st.idle, r)
	return true
}

func (st *poolState) close() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return
	}
	st.closed = true

	// Wake the idle runners with no job assigned; they observe the stop flag
	// and terminate without running anything.
	for _, r := range st.idle {
		r.signalStop()
	}
	st.idle = nil

	// Busy runners get the stop flag and forward cancellation to their job,
	// but their goroutines keep running until the current Run returns.
	for r := range st.busy {
		r.signalStop()
	}
	st.busy = make(map[*poolRunner]struct{})

	discarded := st.queued.Len()
	st.queued.Clear()
	st.metrics.RecordQueueDepth(st.id, 0)

	st.logger.Info("thread pool closed",
		F("pool", st.id), F("discarded_jobs", discarded))
}
