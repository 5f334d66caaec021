// Package capture owns the single microphone session: start/stop, transcript
// delivery, and the auto-chain into translation on natural completion.
package capture

import (
	"strings"
	"sync"

	"plainspeak/internal/events"
)

// State models the capture lifecycle.
type State string

const (
	StateStopped   State = "stopped"
	StateListening State = "listening"
)

// Handlers are the callbacks a backend fires for one capture session.
type Handlers struct {
	OnTranscript func(text string)
	OnError      func()
	OnEnd        func()
}

// Backend is the speech-capture capability.
type Backend interface {
	// Probe reports whether speech capture is available here.
	Probe() bool
	// Start opens a microphone session and wires the handlers. Handlers may
	// be invoked from other goroutines until OnEnd or OnError fires.
	Start(h Handlers) error
	// Stop requests session termination; the backend answers with OnEnd.
	Stop()
}

// Snapshot is a read-only projection of the controller state.
type Snapshot struct {
	State     State
	LastError string
}

// Controller owns at most one live capture session. A transcript received
// during the session marks it speech-originated; on natural completion the
// transcript is forwarded to the translation sink exactly once. An explicit
// user stop suppresses the auto-chain even when a transcript arrived, and a
// hardware or permission error discards everything.
type Controller struct {
	backend   Backend
	publisher events.Publisher
	// forward receives the finalized transcript for auto-translation.
	forward func(text string)
	// discardStale clears any previously translated output once fresh
	// speech arrives.
	discardStale func()

	mu               sync.Mutex
	state            State
	pending          string
	speechOriginated bool
	explicitStop     bool
	lastError        string
}

// New constructs a stopped controller. forward and discardStale may be nil.
func New(backend Backend, pub events.Publisher, forward func(string), discardStale func()) *Controller {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Controller{
		backend:      backend,
		publisher:    pub,
		forward:      forward,
		discardStale: discardStale,
		state:        StateStopped,
	}
}

// Probe satisfies capability.Prober.
func (c *Controller) Probe() bool { return c.backend != nil && c.backend.Probe() }

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, LastError: c.lastError}
}

// Start opens a new session. Fails with an unsupported error when the probe
// reports no capture support; a second Start while listening is a no-op.
func (c *Controller) Start() error {
	if !c.Probe() {
		return ErrUnsupported()
	}
	c.mu.Lock()
	if c.state == StateListening {
		c.mu.Unlock()
		return nil
	}
	c.pending = ""
	c.speechOriginated = false
	c.explicitStop = false
	c.lastError = ""
	c.mu.Unlock()

	err := c.backend.Start(Handlers{
		OnTranscript: c.onTranscript,
		OnError:      c.onError,
		OnEnd:        c.onEnd,
	})
	if err != nil {
		c.mu.Lock()
		c.lastError = err.Error()
		c.mu.Unlock()
		capSessionsTotal.WithLabelValues("start_error").Inc()
		return errCapture(err.Error())
	}

	c.mu.Lock()
	c.state = StateListening
	c.mu.Unlock()
	capSessionsTotal.WithLabelValues("started").Inc()
	c.publisher.Publish(events.Event{Component: "capture", Name: "capture_start"})
	return nil
}

// Stop is the explicit, user-initiated stop. The session is discarded on
// termination without forwarding any transcript, even if one arrived.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateListening {
		c.mu.Unlock()
		return
	}
	c.explicitStop = true
	c.mu.Unlock()

	c.backend.Stop()
	c.publisher.Publish(events.Event{Component: "capture", Name: "capture_stop"})
}

func (c *Controller) onTranscript(text string) {
	c.mu.Lock()
	if c.state != StateListening {
		c.mu.Unlock()
		return
	}
	c.pending = text
	c.speechOriginated = true
	c.mu.Unlock()

	if c.discardStale != nil {
		c.discardStale()
	}
	c.publisher.Publish(events.Event{Component: "capture", Name: "transcript",
		Fields: map[string]any{"chars": len(text)}})
}

// onEnd handles natural session completion. State is fully reset before the
// forwarding sink runs, so a re-entrant Start from inside the sink sees a
// clean controller.
func (c *Controller) onEnd() {
	c.mu.Lock()
	transcript := c.pending
	shouldForward := c.speechOriginated &&
		!c.explicitStop &&
		strings.TrimSpace(transcript) != ""
	c.state = StateStopped
	c.pending = ""
	c.speechOriginated = false
	c.explicitStop = false
	c.mu.Unlock()

	c.publisher.Publish(events.Event{Component: "capture", Name: "capture_end"})
	if shouldForward && c.forward != nil {
		c.publisher.Publish(events.Event{Component: "capture", Name: "auto_translate"})
		c.forward(transcript)
	}
}

func (c *Controller) onError() {
	c.mu.Lock()
	if c.state != StateListening {
		c.mu.Unlock()
		return
	}
	c.state = StateStopped
	c.pending = ""
	c.speechOriginated = false
	c.explicitStop = false
	c.lastError = "microphone error, check device and permissions"
	c.mu.Unlock()

	capSessionsTotal.WithLabelValues("error").Inc()
	c.publisher.Publish(events.Event{Component: "capture", Name: "capture_error"})
}
