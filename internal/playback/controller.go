// Package playback owns the single speech-synthesis utterance: at most one
// active at a time, cancel-then-start, idempotent stop.
package playback

import (
	"sync"

	"plainspeak/internal/events"
)

// Params are the fixed synthesis settings applied to every utterance.
type Params struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultParams mirror a neutral, slightly brisk read-back voice.
var DefaultParams = Params{Rate: 1.05, Pitch: 1.0, Volume: 1.0}

// Handlers are the callbacks a backend fires for one utterance.
type Handlers struct {
	OnEnd   func()
	OnError func()
}

// Backend is the speech-synthesis capability.
type Backend interface {
	// Probe reports whether synthesis is available here.
	Probe() bool
	// Speak starts one utterance and wires its handlers.
	Speak(text string, p Params, h Handlers) error
	// CancelAll stops any active utterance. Safe to call when idle.
	CancelAll()
}

// Snapshot is a read-only projection of the controller state.
type Snapshot struct {
	Text     string
	Speaking bool
}

// Controller enforces at-most-one active utterance. Each utterance carries a
// token; end/error callbacks from a cancelled utterance compare tokens and
// are discarded, so a cancelled utterance can never clear its successor.
type Controller struct {
	backend   Backend
	publisher events.Publisher

	mu        sync.Mutex
	text      string
	speaking  bool
	utterance uint64
}

// New constructs an idle controller.
func New(backend Backend, pub events.Publisher) *Controller {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Controller{backend: backend, publisher: pub}
}

// Probe satisfies capability.Prober.
func (c *Controller) Probe() bool { return c.backend != nil && c.backend.Probe() }

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Text: c.text, Speaking: c.speaking}
}

// Play speaks text, cancelling any active utterance first. Callers treat an
// unsupported error as non-fatal degradation: the translation stands,
// it just is not read aloud.
func (c *Controller) Play(text string) error {
	if !c.Probe() {
		return ErrUnsupported()
	}

	c.mu.Lock()
	wasSpeaking := c.speaking
	c.utterance++
	id := c.utterance
	c.text = text
	c.speaking = true
	c.mu.Unlock()

	if wasSpeaking {
		// The token already moved on, so the cancelled utterance's end
		// callback cannot clear the one we are about to start.
		c.backend.CancelAll()
	}

	err := c.backend.Speak(text, DefaultParams, Handlers{
		OnEnd:   func() { c.finish(id) },
		OnError: func() { c.finish(id) },
	})
	if err != nil {
		c.finish(id)
		return err
	}
	c.publisher.Publish(events.Event{Component: "playback", Name: "playback_start",
		Fields: map[string]any{"chars": len(text)}})
	return nil
}

// Stop cancels the active utterance. Idempotent; a no-op when idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	active := c.speaking
	c.utterance++
	c.text = ""
	c.speaking = false
	c.mu.Unlock()

	if active {
		c.backend.CancelAll()
		c.publisher.Publish(events.Event{Component: "playback", Name: "playback_stop"})
	}
}

// finish clears the session for utterance id; stale ids are ignored.
func (c *Controller) finish(id uint64) {
	c.mu.Lock()
	if id != c.utterance {
		c.mu.Unlock()
		return
	}
	c.text = ""
	c.speaking = false
	c.mu.Unlock()
	c.publisher.Publish(events.Event{Component: "playback", Name: "playback_end"})
}
