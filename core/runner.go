package core

import (
	"runtime/debug"
	"sync"
	"time"
	"weak"
)

// poolRunner is the agent bound to exactly one background goroutine. It
// repeatedly waits for a job, executes it, reports completion to the pool,
// and either receives the next job or terminates.
//
// Lifecycle: a runner is only ever created with a job already in hand (pools
// never spawn idle goroutines speculatively), so it starts busy. After each
// job the pool's verdict moves it to busy (new job), idle (parked on its wake
// signal), or terminated. A terminated runner is never reused.
//
// The back-reference to the pool state is a weak pointer: a runner must not
// keep its pool alive. Before every completion report the runner re-checks
// that the pool still exists and terminates if it does not.
type poolRunner struct {
	mu       sync.Mutex
	job      Job
	stopping bool

	wake *signal
	pool weak.Pointer[poolState]

	// Handlers are copied from the pool at creation so a job finishing after
	// the pool is gone can still report its fault.
	poolID  string
	faults  FaultHandler
	metrics Metrics
	logger  Logger
}

func newPoolRunner(st *poolState) *poolRunner {
	return &poolRunner{
		wake:    newSignal(),
		pool:    weak.Make(st),
		poolID:  st.id,
		faults:  st.faults,
		metrics: st.metrics,
		logger:  st.logger,
	}
}

// startJob hands the runner a new job and wakes its goroutine. Called by the
// pool with the pool lock held, either at runner creation, when reusing an
// idle runner, or when handing over a queued job on completion.
//
// Assigning a job to a runner that is still busy indicates corrupted pool
// bookkeeping, not a runtime condition; it panics.
func (r *poolRunner) startJob(job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.job != nil {
		panic("threadpool: startJob called while the runner is still busy")
	}

	r.job = job
	r.wake.Set()
}

// signalStop asks the runner to terminate. It sets the stop flag, forwards
// the advisory cancellation to the active job (if any), and wakes the runner
// in case it is parked idle. It never blocks waiting for the job to return.
func (r *poolRunner) signalStop() {
	r.mu.Lock()
	r.stopping = true
	job := r.job
	r.mu.Unlock()

	if job != nil {
		job.RequestStop()
	}

	r.wake.Set()
}

// loop is the runner's goroutine body.
//
// It blocks until either a new job is assigned or a stop is requested; on
// stop it exits, otherwise it executes the job with fault isolation, clears
// the job reference, and reports completion through the weak back-reference.
// If the pool no longer exists, or the pool's verdict is "terminate", the
// goroutine returns and the runner is done for good.
func (r *poolRunner) loop() {
	for {
		r.wake.Wait()

		r.mu.Lock()
		r.wake.Clear()
		if r.stopping {
			r.mu.Unlock()
			return
		}
		job := r.job
		r.mu.Unlock()

		if job == nil {
			// The wake signal has no spurious wakeups: woken without a job
			// and without a stop request means the pool's bookkeeping is
			// corrupted.
			panic("threadpool: runner woken without a job or stop request")
		}

		r.executeJob(job)

		r.mu.Lock()
		r.job = nil
		stopping := r.stopping
		r.mu.Unlock()

		if stopping {
			// The pool shut down while the job was running. Exit without
			// reporting back.
			return
		}

		st := r.pool.Value()
		if st == nil {
			// The pool was released without Close; nobody is left to report
			// to.
			return
		}

		if !st.runnerFinished(r) {
			// The pool wants us to end to reduce the total thread count.
			return
		}
	}
}

// executeJob runs one job, isolating errors and panics so they cannot
// escape the runner's goroutine.
func (r *poolRunner) executeJob(job Job) {
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				r.faults.HandleJobPanic(r.poolID, p, debug.Stack())
				r.metrics.RecordJobFault(r.poolID, FaultKindPanic)
			}
		}()
		return job.Run()
	}()

	if err != nil {
		r.faults.HandleJobError(r.poolID, err)
		r.metrics.RecordJobFault(r.poolID, FaultKindError)
	}

	r.metrics.RecordJobDuration(r.poolID, time.Since(start))
}
