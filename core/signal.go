package core

import "sync"

// signal is a level-triggered event used to wake a parked runner.
//
// Set raises the signal and wakes the waiter; the signal stays raised until
// Clear is called, so a Set that happens before Wait is not lost. Unlike a
// bare condition variable there are no spurious wakeups: Wait only returns
// while the signal is raised.
//
// Intended for a single waiter (the runner's own goroutine); Set and Clear
// may be called from any goroutine.
type signal struct {
	mu  sync.Mutex
	set bool
	ch  chan struct{}
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{}, 1)}
}

// Set raises the signal. No-op if already raised.
func (s *signal) Set() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		return
	}
	s.set = true

	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Clear lowers the signal and drains any pending wakeup token.
func (s *signal) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = false

	select {
	case <-s.ch:
	default:
	}
}

// Wait blocks until the signal is raised. It does not lower the signal;
// callers pair it with Clear once they have acted on the wakeup.
func (s *signal) Wait() {
	for {
		s.mu.Lock()
		raised := s.set
		s.mu.Unlock()

		if raised {
			return
		}

		<-s.ch
	}
}

// IsSet reports whether the signal is currently raised.
func (s *signal) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}
