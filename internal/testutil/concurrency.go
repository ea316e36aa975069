package testutil

import (
	"sync"
	"sync/atomic"
)

// Recorder captures the order in which targets finished, thread-safely.
type Recorder struct {
	mu    sync.Mutex
	order []string
}

// Record appends an ID to the execution order.
func (r *Recorder) Record(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, id)
}

// Order returns a copy of the recorded execution order.
func (r *Recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Index returns the position of id in the recorded order, or -1.
func (r *Recorder) Index(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, got := range r.order {
		if got == id {
			return i
		}
	}
	return -1
}

// ConcurrencyTracker measures the peak number of simultaneous executions.
type ConcurrencyTracker struct {
	current atomic.Int32
	max     atomic.Int32
}

// Enter marks the start of one execution and returns the matching exit
// function.
func (t *ConcurrencyTracker) Enter() func() {
	cur := t.current.Add(1)
	for {
		max := t.max.Load()
		if cur <= max || t.max.CompareAndSwap(max, cur) {
			break
		}
	}
	return func() { t.current.Add(-1) }
}

// Max returns the peak concurrency observed so far.
func (t *ConcurrencyTracker) Max() int32 {
	return t.max.Load()
}
