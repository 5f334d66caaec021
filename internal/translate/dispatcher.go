// Package translate builds the mode-specific prompt and issues exactly one
// in-flight generation request at a time.
package translate

import (
	"context"
	"strings"
	"sync"
	"time"

	"plainspeak/internal/engine"
	"plainspeak/internal/events"
)

// Engine is the slice of the engine manager the dispatcher needs.
type Engine interface {
	Snapshot() engine.Snapshot
	Generate(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error)
}

// Result is one completed translation.
type Result struct {
	Input       string
	Output      string
	Mode        Mode
	GeneratedAt time.Time
}

// Dispatcher enforces mutual exclusion over generation requests and maps
// failures to typed, user-facing errors. A second Translate while one is
// outstanding is rejected with AlreadyInFlight, never queued.
type Dispatcher struct {
	engine    Engine
	publisher events.Publisher
	// speak, when non-nil, receives successful output for read-back.
	speak func(text string)

	// inflight is the single request slot: a failed try-send means a
	// request is outstanding. The check and the set are one operation.
	inflight chan struct{}

	mu   sync.Mutex
	last *Result
}

// New constructs a Dispatcher. speak may be nil when synthesis is
// unsupported; translation succeeds without audio either way.
func New(eng Engine, pub events.Publisher, speak func(string)) *Dispatcher {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Dispatcher{
		engine:    eng,
		publisher: pub,
		speak:     speak,
		inflight:  make(chan struct{}, 1),
	}
}

// Translate rewrites text in the given direction. Validation order: empty
// input, engine readiness, then the in-flight slot; the slot is released on
// every exit path.
func (d *Dispatcher) Translate(ctx context.Context, text string, mode Mode) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		translationsTotal.WithLabelValues(string(mode), "empty_input").Inc()
		return Result{}, ErrEmptyInput()
	}
	if _, err := ParseMode(string(mode)); err != nil {
		translationsTotal.WithLabelValues(string(mode), "unknown_mode").Inc()
		return Result{}, err
	}

	snap := d.engine.Snapshot()
	if snap.State != engine.StateReady {
		translationsTotal.WithLabelValues(string(mode), "not_ready").Inc()
		if snap.State == engine.StateFailed {
			return Result{}, errNotReady(snap.Message)
		}
		return Result{}, errNotReady("")
	}

	select {
	case d.inflight <- struct{}{}:
	default:
		translationsTotal.WithLabelValues(string(mode), "busy").Inc()
		return Result{}, ErrAlreadyInFlight()
	}
	defer func() { <-d.inflight }()

	d.publisher.Publish(events.Event{Component: "translate", Name: "request",
		Fields: map[string]any{"mode": string(mode)}})

	out, err := d.engine.Generate(ctx, buildMessages(mode, trimmed), genParams(mode))
	if err != nil {
		translationsTotal.WithLabelValues(string(mode), "failed").Inc()
		d.publisher.Publish(events.Event{Component: "translate", Name: "failed",
			Fields: map[string]any{"error": err.Error()}})
		if engine.IsNotReady(err) {
			// Lost a race with a teardown or retry between the snapshot
			// and the call; same user-facing story as the gate above.
			return Result{}, errNotReady(err.Error())
		}
		return Result{}, errGenerationFailed(err.Error())
	}
	out = strings.TrimSpace(out)
	if out == "" {
		translationsTotal.WithLabelValues(string(mode), "empty").Inc()
		return Result{}, emptyGenerationError{}
	}

	res := Result{Input: trimmed, Output: out, Mode: mode, GeneratedAt: time.Now()}
	d.mu.Lock()
	d.last = &res
	d.mu.Unlock()

	translationsTotal.WithLabelValues(string(mode), "ok").Inc()
	d.publisher.Publish(events.Event{Component: "translate", Name: "done",
		Fields: map[string]any{"mode": string(mode), "chars": len(out)}})

	if d.speak != nil {
		d.speak(out)
	}
	return res, nil
}

// InFlight reports whether a request is outstanding.
func (d *Dispatcher) InFlight() bool { return len(d.inflight) == 1 }

// Last returns the most recent completed translation.
func (d *Dispatcher) Last() (Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return Result{}, false
	}
	return *d.last, true
}

// ClearLast discards the stored result. The capture controller calls this
// when fresh speech arrives so stale output never lingers next to new input.
func (d *Dispatcher) ClearLast() {
	d.mu.Lock()
	d.last = nil
	d.mu.Unlock()
}
