package core

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// jobQueue is a strict-FIFO queue of jobs waiting for a free runner slot.
//
// It is not safe for concurrent use on its own; the owning pool's mutex
// guards every access, keeping all queue and runner bookkeeping inside one
// mutual-exclusion section.
type jobQueue struct {
	jobs []Job
}

func newJobQueue() *jobQueue {
	return &jobQueue{
		jobs: make([]Job, 0, defaultQueueCap),
	}
}

func (q *jobQueue) Push(j Job) {
	q.jobs = append(q.jobs, j)
}

func (q *jobQueue) Pop() (Job, bool) {
	if len(q.jobs) == 0 {
		return nil, false
	}

	j := q.jobs[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	q.maybeCompact()

	return j, true
}

func (q *jobQueue) maybeCompact() {
	n := len(q.jobs)
	c := cap(q.jobs)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.jobs = make([]Job, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]Job, n, newCap)
	copy(newSlice, q.jobs)
	q.jobs = newSlice
}

func (q *jobQueue) Len() int {
	return len(q.jobs)
}

func (q *jobQueue) IsEmpty() bool {
	return len(q.jobs) == 0
}

// Clear removes all jobs from the queue and releases references.
func (q *jobQueue) Clear() {
	q.jobs = make([]Job, 0, defaultQueueCap)
}
