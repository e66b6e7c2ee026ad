package threadpool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	threadpool "github.com/calldwell/go-thread-pool"
)

func TestGlobalThreadPool_Lifecycle(t *testing.T) {
	if err := threadpool.InitGlobalThreadPool(1, 2); err != nil {
		t.Fatalf("InitGlobalThreadPool failed: %v", err)
	}
	defer threadpool.ShutdownGlobalThreadPool()

	pool := threadpool.GetGlobalThreadPool()
	if pool == nil {
		t.Fatal("expected a global pool instance")
	}
	if pool.MinThreads() != 1 || pool.MaxThreads() != 2 {
		t.Errorf("expected bounds (1, 2), got (%d, %d)", pool.MinThreads(), pool.MaxThreads())
	}

	// Re-initializing while initialized is a no-op.
	if err := threadpool.InitGlobalThreadPool(3, 9); err != nil {
		t.Fatalf("repeated init failed: %v", err)
	}
	if got := threadpool.GetGlobalThreadPool(); got != pool {
		t.Error("repeated init must not replace the global pool")
	}
}

func TestGlobalThreadPool_InvalidBounds(t *testing.T) {
	if err := threadpool.InitGlobalThreadPool(4, 2); err == nil {
		threadpool.ShutdownGlobalThreadPool()
		t.Fatal("expected an error for max < min")
	}
}

func TestGlobalThreadPool_Submit(t *testing.T) {
	if err := threadpool.InitGlobalThreadPool(0, 2); err != nil {
		t.Fatalf("InitGlobalThreadPool failed: %v", err)
	}
	defer threadpool.ShutdownGlobalThreadPool()

	var ran atomic.Bool
	done := make(chan struct{})
	err := threadpool.Submit(threadpool.NewFuncJob(func(ctx context.Context) error {
		ran.Store(true)
		close(done)
		return nil
	}))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran on the global pool")
	}
	if !ran.Load() {
		t.Error("job should have run")
	}
}

func TestGetGlobalThreadPool_PanicsWhenUninitialized(t *testing.T) {
	threadpool.ShutdownGlobalThreadPool()

	defer func() {
		if recover() == nil {
			t.Error("GetGlobalThreadPool should panic before initialization")
		}
	}()
	threadpool.GetGlobalThreadPool()
}

func TestShutdownGlobalThreadPool_SubmitFailsAfter(t *testing.T) {
	if err := threadpool.InitGlobalThreadPool(0, 1); err != nil {
		t.Fatalf("InitGlobalThreadPool failed: %v", err)
	}
	pool := threadpool.GetGlobalThreadPool()
	threadpool.ShutdownGlobalThreadPool()

	if err := pool.Submit(threadpool.NewFuncJob(func(ctx context.Context) error { return nil })); err != threadpool.ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}
