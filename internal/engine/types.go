package engine

import "time"

// State represents the lifecycle state of the engine manager.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshot is a read-only projection of the manager state. Fraction is nil
// while progress is indeterminate.
type Snapshot struct {
	State    State
	Message  string
	Hint     string
	Fraction *float64
}

// progressSample records the most recent progress callback for the watchdog.
type progressSample struct {
	value      float64
	observedAt time.Time
}
