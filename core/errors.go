package core

// PoolError represents an error condition specific to the thread pool.
type PoolError struct {
	msg string
}

// Error implements the error interface for PoolError.
func (e *PoolError) Error() string { return e.msg }

// ErrPoolClosed is returned when submitting a job to a closed pool.
var ErrPoolClosed = &PoolError{"thread pool closed"}
