package core

// PoolStats represents runtime observability state for a thread pool.
//
// It is an internally consistent snapshot taken under the pool lock; in a
// live pool the values may be stale the instant after they are read.
type PoolStats struct {
	ID         string
	MinThreads int
	MaxThreads int
	Busy       int
	Idle       int
	Queued     int
	Closed     bool
}
