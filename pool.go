package threadpool

import "sync"

// =============================================================================
// Global Thread Pool Helper (Singleton)
// =============================================================================

var (
	globalThreadPool *ThreadPool
	globalMu         sync.Mutex
)

// InitGlobalThreadPool initializes the global thread pool with the given
// thread bounds. Calling it again while initialized is a no-op.
func InitGlobalThreadPool(minThreads, maxThreads int) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalThreadPool != nil {
		return nil // Already initialized
	}

	pool, err := NewThreadPool(minThreads, maxThreads)
	if err != nil {
		return err
	}

	globalThreadPool = pool
	return nil
}

// GetGlobalThreadPool returns the global thread pool instance.
// It panics if InitGlobalThreadPool has not been called.
func GetGlobalThreadPool() *ThreadPool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalThreadPool == nil {
		panic("GlobalThreadPool not initialized. Call InitGlobalThreadPool() first.")
	}
	return globalThreadPool
}

// ShutdownGlobalThreadPool closes the global thread pool. Like Close, this
// is a hard abort: queued jobs are discarded and running jobs are asked to
// stop without being waited on.
func ShutdownGlobalThreadPool() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalThreadPool != nil {
		globalThreadPool.Close()
		globalThreadPool = nil
	}
}

// Submit hands a job to the global thread pool.
// It panics if InitGlobalThreadPool has not been called.
func Submit(job Job) error {
	return GetGlobalThreadPool().Submit(job)
}
