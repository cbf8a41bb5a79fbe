// Package events contains event contracts for progress reporting over
// WebSocket in the sales analytics service.
package events

import "time"

// EventTypeProgress identifies analysis progress events on the wire.
const EventTypeProgress = "analysis:progress"

// ProgressEvent is emitted at engine stage boundaries. Percent is
// monotonically increasing per run; Phase is a short human-readable label.
// The event stream is observational only and consumers must tolerate
// missed or absent events.
type ProgressEvent struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id"`
	Percent   int       `json:"percent"`
	Phase     string    `json:"phase"`
	Timestamp time.Time `json:"timestamp"`
}

// NewProgressEvent builds a progress event stamped with the current time.
func NewProgressEvent(runID string, percent int, phase string) ProgressEvent {
	return ProgressEvent{
		Type:      EventTypeProgress,
		RunID:     runID,
		Percent:   percent,
		Phase:     phase,
		Timestamp: time.Now(),
	}
}
