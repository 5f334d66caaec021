package engine

import (
	"sync"
	"time"

	"plainspeak/internal/events"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultPollInterval = 5 * time.Second
	defaultStallAfter   = 20 * time.Second
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// PollInterval is how often the stall watchdog wakes while loading.
	PollInterval time.Duration
	// StallAfter is how long the progress sample may go without an update
	// before the one-shot stall advisory is emitted.
	StallAfter time.Duration
}

// Manager owns the engine lifecycle: acquisition, progress and stall
// monitoring, retry, generation, and teardown. It is the only writer of the
// engine status; other components read Snapshot() only.
type Manager struct {
	mu        sync.RWMutex
	backend   Backend
	publisher events.Publisher
	cfg       Config

	state    State
	message  string
	hint     string
	fraction *float64
	sample   progressSample

	modelID string
	session Session
	// attempt is the generation token of the current acquisition. Callbacks
	// carry the token they were created under and are discarded when stale.
	attempt uint64
	closed  bool
}

// New constructs a Manager in the Idle state.
func New(backend Backend, cfg Config, pub events.Publisher) *Manager {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.StallAfter <= 0 {
		cfg.StallAfter = defaultStallAfter
	}
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Manager{
		backend:   backend,
		publisher: pub,
		cfg:       cfg,
		state:     StateIdle,
	}
}

// Probe reports whether the backend can run here. Satisfies capability.Prober.
func (m *Manager) Probe() bool { return m.backend != nil && m.backend.Probe() }

// Snapshot returns a consistent read-only view of the manager state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var frac *float64
	if m.fraction != nil {
		f := *m.fraction
		frac = &f
	}
	return Snapshot{State: m.state, Message: m.message, Hint: m.hint, Fraction: frac}
}

// Ready reports whether the engine can serve generation requests.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateReady && m.session != nil
}

// Close tears the manager down. Any in-flight acquisition is abandoned (its
// callbacks become stale) and the session, if any, is released best-effort.
// Idempotent; no status is mutated after the first call.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.attempt++
	sess := m.session
	m.session = nil
	m.mu.Unlock()

	if sess != nil {
		_ = sess.Release()
	}
	m.publisher.Publish(events.Event{Component: "engine", Name: "released"})
}
