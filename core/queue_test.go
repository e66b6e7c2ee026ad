package core

import "testing"

func TestJobQueue_FIFOOrder(t *testing.T) {
	q := newJobQueue()

	jobs := make([]*testJob, 10)
	for i := range jobs {
		jobs[i] = newTestJob()
		q.Push(jobs[i])
	}

	if q.Len() != 10 {
		t.Fatalf("expected 10 queued jobs, got %d", q.Len())
	}

	for i := range jobs {
		j, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop %d returned empty", i)
		}
		if j != jobs[i] {
			t.Fatalf("Pop %d returned the wrong job", i)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop on an empty queue should report empty")
	}
}

func TestJobQueue_Clear(t *testing.T) {
	q := newJobQueue()
	for i := 0; i < 5; i++ {
		q.Push(newTestJob())
	}

	q.Clear()

	if !q.IsEmpty() {
		t.Errorf("expected empty queue after Clear, got %d", q.Len())
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop after Clear should report empty")
	}
}

func TestJobQueue_OrderSurvivesCompaction(t *testing.T) {
	q := newJobQueue()

	// Grow well past the compaction threshold, drain most of it, then verify
	// the remaining order is intact.
	jobs := make([]*testJob, 4*compactMinCap)
	for i := range jobs {
		jobs[i] = newTestJob()
		q.Push(jobs[i])
	}

	drain := len(jobs) - 8
	for i := 0; i < drain; i++ {
		j, ok := q.Pop()
		if !ok || j != jobs[i] {
			t.Fatalf("unexpected job at position %d", i)
		}
	}

	for i := drain; i < len(jobs); i++ {
		j, ok := q.Pop()
		if !ok || j != jobs[i] {
			t.Fatalf("compaction broke FIFO order at position %d", i)
		}
	}
}

func TestJobQueue_ReusableAfterDrain(t *testing.T) {
	q := newJobQueue()

	for round := 0; round < 3; round++ {
		a, b := newTestJob(), newTestJob()
		q.Push(a)
		q.Push(b)

		if j, _ := q.Pop(); j != a {
			t.Fatalf("round %d: wrong first job", round)
		}
		if j, _ := q.Pop(); j != b {
			t.Fatalf("round %d: wrong second job", round)
		}
		if !q.IsEmpty() {
			t.Fatalf("round %d: queue should be empty", round)
		}
	}
}
