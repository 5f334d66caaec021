package playback

import (
	"errors"
	"sync"
	"testing"

	"plainspeak/internal/events"
)

// scriptedSynth records utterances and lets tests fire their callbacks.
type scriptedSynth struct {
	probe    bool
	speakErr error

	mu      sync.Mutex
	spoken  []string
	current Handlers
	cancels int
}

func (s *scriptedSynth) Probe() bool { return s.probe }

func (s *scriptedSynth) Speak(text string, p Params, h Handlers) error {
	if s.speakErr != nil {
		return s.speakErr
	}
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.current = h
	s.mu.Unlock()
	return nil
}

func (s *scriptedSynth) CancelAll() {
	s.mu.Lock()
	s.cancels++
	h := s.current
	s.current = Handlers{}
	s.mu.Unlock()
	// Real synthesizers report cancellation through the end callback.
	if h.OnEnd != nil {
		h.OnEnd()
	}
}

func (s *scriptedSynth) handlers() Handlers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *scriptedSynth) cancelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancels
}

func TestPlayUnsupported(t *testing.T) {
	c := New(&scriptedSynth{probe: false}, nil)
	if err := c.Play("hello"); !IsUnsupported(err) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestPlayMarksSpeakingUntilEnd(t *testing.T) {
	s := &scriptedSynth{probe: true}
	c := New(s, nil)
	if err := c.Play("hello"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if snap := c.Snapshot(); !snap.Speaking || snap.Text != "hello" {
		t.Fatalf("expected active utterance, got %+v", snap)
	}
	s.handlers().OnEnd()
	if snap := c.Snapshot(); snap.Speaking || snap.Text != "" {
		t.Fatalf("expected idle after end, got %+v", snap)
	}
}

func TestPlayCancelsPreviousUtteranceFirst(t *testing.T) {
	s := &scriptedSynth{probe: true}
	c := New(s, nil)
	if err := c.Play("first"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if err := c.Play("second"); err != nil {
		t.Fatalf("play: %v", err)
	}

	if s.cancelCount() != 1 {
		t.Fatalf("expected previous utterance cancelled, got %d cancels", s.cancelCount())
	}
	// The cancelled utterance's end callback already fired inside
	// CancelAll; exactly one utterance is active afterward.
	snap := c.Snapshot()
	if !snap.Speaking || snap.Text != "second" {
		t.Fatalf("expected second utterance active, got %+v", snap)
	}
	s.handlers().OnEnd()
	if c.Snapshot().Speaking {
		t.Fatalf("expected idle after second ends")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := &scriptedSynth{probe: true}
	pub := events.NewMemoryPublisher()
	c := New(s, pub)

	c.Stop() // nothing playing: no-op
	if s.cancelCount() != 0 {
		t.Fatalf("stop while idle reached the backend")
	}

	_ = c.Play("hello")
	c.Stop()
	c.Stop()
	if s.cancelCount() != 1 {
		t.Fatalf("expected one cancel, got %d", s.cancelCount())
	}
	if c.Snapshot().Speaking {
		t.Fatalf("expected idle after stop")
	}
}

func TestUtteranceErrorClearsSession(t *testing.T) {
	s := &scriptedSynth{probe: true}
	c := New(s, nil)
	_ = c.Play("hello")
	s.handlers().OnError()
	if snap := c.Snapshot(); snap.Speaking || snap.Text != "" {
		t.Fatalf("expected idle after utterance error, got %+v", snap)
	}
}

func TestSpeakFailureLeavesControllerIdle(t *testing.T) {
	s := &scriptedSynth{probe: true, speakErr: errors.New("synth down")}
	c := New(s, nil)
	if err := c.Play("hello"); err == nil {
		t.Fatalf("expected speak error")
	}
	if c.Snapshot().Speaking {
		t.Fatalf("failed speak left the controller speaking")
	}
}

func TestStaleEndCallbackIgnored(t *testing.T) {
	s := &scriptedSynth{probe: true}
	c := New(s, nil)
	_ = c.Play("first")
	stale := s.handlers()
	_ = c.Play("second")

	// The first utterance's end callback races in late.
	stale.OnEnd()
	snap := c.Snapshot()
	if !snap.Speaking || snap.Text != "second" {
		t.Fatalf("stale end callback cleared the active utterance: %+v", snap)
	}
}
