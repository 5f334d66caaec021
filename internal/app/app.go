// Package app wires the orchestration components together and exposes the
// externally observable status. Event flow is strictly one-directional:
// components publish, the shell and its consumers read; nothing here feeds
// back into a component's transitions.
package app

import (
	"context"
	"strings"
	"sync"

	"plainspeak/internal/capability"
	"plainspeak/internal/capture"
	"plainspeak/internal/engine"
	"plainspeak/internal/events"
	"plainspeak/internal/playback"
	"plainspeak/internal/translate"
	"plainspeak/pkg/types"
)

// Config holds shell construction parameters.
type Config struct {
	// ModelID is handed to the engine backend on acquisition.
	ModelID string
	// DefaultMode is the initial sticky direction for voice input.
	DefaultMode translate.Mode
	// Engine tunables (watchdog intervals) pass through unchanged.
	Engine engine.Config
}

// App is the orchestration shell.
type App struct {
	caps       capability.Set
	engine     *engine.Manager
	capture    *capture.Controller
	playback   *playback.Controller
	dispatcher *translate.Dispatcher
	publisher  events.Publisher

	modelID string

	mu     sync.Mutex
	mode   translate.Mode
	ctx    context.Context
	closed bool
}

// New probes the three capabilities once and wires the components:
// capture forwards finalized transcripts into the dispatcher, and the
// dispatcher reads successful output back through playback when synthesis
// is available.
func New(cfg Config, engineBackend engine.Backend, captureBackend capture.Backend, playbackBackend playback.Backend, pub events.Publisher) *App {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = translate.ModeCorporateToPlain
	}

	a := &App{
		publisher: pub,
		modelID:   cfg.ModelID,
		mode:      cfg.DefaultMode,
		ctx:       context.Background(),
	}

	a.engine = engine.New(engineBackend, cfg.Engine, pub)
	a.playback = playback.New(playbackBackend, pub)

	a.caps = capability.Detect(a.engine, probeOrNil(captureBackend), a.playback)

	var speak func(string)
	if a.caps.Synthesis {
		speak = func(text string) { _ = a.playback.Play(text) }
	}
	a.dispatcher = translate.New(a.engine, pub, speak)

	a.capture = capture.New(captureBackend, pub, a.autoTranslate, a.dispatcher.ClearLast)
	return a
}

func probeOrNil(b capture.Backend) capability.Prober {
	if b == nil {
		return nil
	}
	return proberFunc(b.Probe)
}

type proberFunc func() bool

func (f proberFunc) Probe() bool { return f() }

// Start begins engine acquisition. ctx bounds all background work the shell
// spawns, including auto-triggered translations.
func (a *App) Start(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()
	a.engine.Acquire(ctx, a.modelID)
}

// Capabilities returns the startup probe results.
func (a *App) Capabilities() capability.Set { return a.caps }

// SetMode updates the sticky direction applied to voice-captured input.
func (a *App) SetMode(mode translate.Mode) error {
	if _, err := translate.ParseMode(string(mode)); err != nil {
		return err
	}
	a.mu.Lock()
	a.mode = mode
	a.mu.Unlock()
	return nil
}

// Mode returns the sticky direction.
func (a *App) Mode() translate.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Translate rewrites text in the given direction.
func (a *App) Translate(ctx context.Context, text string, mode translate.Mode) (translate.Result, error) {
	return a.dispatcher.Translate(ctx, text, mode)
}

// autoTranslate is the capture controller's forwarding sink. The capture
// session is already fully reset when this runs, so a translation failure
// here surfaces through status and events only.
func (a *App) autoTranslate(text string) {
	a.mu.Lock()
	mode := a.mode
	ctx := a.ctx
	a.mu.Unlock()
	_, _ = a.dispatcher.Translate(ctx, text, mode)
}

// RetryEngine restarts acquisition after a failure (or re-acquires an
// already-ready engine; the manager never does this silently).
func (a *App) RetryEngine() {
	a.mu.Lock()
	ctx := a.ctx
	a.mu.Unlock()
	a.engine.Retry(ctx)
}

// StartCapture opens the microphone session.
func (a *App) StartCapture() error { return a.capture.Start() }

// StopCapture explicitly ends the session; no auto-translation follows.
func (a *App) StopCapture() { a.capture.Stop() }

// Speak reads text aloud; with empty text it replays the last translation.
func (a *App) Speak(text string) error {
	if strings.TrimSpace(text) == "" {
		last, ok := a.dispatcher.Last()
		if !ok {
			return errNothingToReplay{}
		}
		text = last.Output
	}
	return a.playback.Play(text)
}

// StopSpeaking cancels the active utterance, if any.
func (a *App) StopSpeaking() { a.playback.Stop() }

// Ready reports whether the engine can serve translations.
func (a *App) Ready() bool { return a.engine.Ready() }

// Status builds the aggregate status surface for rendering consumers.
func (a *App) Status() types.StatusResponse {
	eng := a.engine.Snapshot()
	mic := a.capture.Snapshot()
	play := a.playback.Snapshot()

	resp := types.StatusResponse{
		Engine: types.EngineStatus{
			State:    string(eng.State),
			Message:  eng.Message,
			Hint:     eng.Hint,
			Fraction: eng.Fraction,
		},
		Capture: types.CaptureStatus{
			State:     string(mic.State),
			LastError: mic.LastError,
		},
		Playback: types.PlaybackStatus{
			Speaking: play.Speaking,
			Text:     play.Text,
		},
		Capabilities: types.Capabilities{
			Inference: a.caps.Inference,
			Capture:   a.caps.Capture,
			Synthesis: a.caps.Synthesis,
		},
		Mode:                string(a.Mode()),
		TranslationInFlight: a.dispatcher.InFlight(),
	}
	if last, ok := a.dispatcher.Last(); ok {
		resp.LastResult = &types.TranslateResponse{
			Input:       last.Input,
			Output:      last.Output,
			Mode:        string(last.Mode),
			GeneratedAt: last.GeneratedAt.Unix(),
		}
	}
	return resp
}

// Close tears everything down: the capture session stops listening, the
// playback session cancels its utterance, and the engine releases its
// session best-effort. Idempotent; safe when nothing is active.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.capture.Stop()
	a.playback.Stop()
	a.engine.Close()
}

// errNothingToReplay signals a replay request with no stored translation.
type errNothingToReplay struct{}

func (errNothingToReplay) Error() string { return "nothing to replay yet" }

// ErrNothingToReplay returns the error surfaced when a replay is requested
// before any translation has completed.
func ErrNothingToReplay() error { return errNothingToReplay{} }

// IsNothingToReplay reports whether err came from a replay with no result.
func IsNothingToReplay(err error) bool {
	_, ok := err.(errNothingToReplay)
	return ok
}
