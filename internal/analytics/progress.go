package analytics

import "sync"

// ProgressFunc receives percentage milestones with a short phase label.
// Percentages are monotonically increasing within a run. The callback is an
// observational side channel only; correctness never depends on it.
type ProgressFunc func(percent int, phase string)

// ProgressBroadcaster fans one progress stream out to zero or more
// listeners. Listeners must tolerate missed calls; a broadcaster with no
// listeners is a no-op.
type ProgressBroadcaster struct {
	mu        sync.RWMutex
	listeners []ProgressFunc
}

// Subscribe registers a listener for subsequent emissions.
func (b *ProgressBroadcaster) Subscribe(fn ProgressFunc) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Emit delivers a milestone to every listener in subscription order.
func (b *ProgressBroadcaster) Emit(percent int, phase string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.listeners {
		fn(percent, phase)
	}
}
