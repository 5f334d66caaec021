package engine

import (
	"context"
	"testing"
	"time"

	"plainspeak/internal/events"
)

func stalledManager(t *testing.T, pub events.Publisher) (*Manager, chan struct{}) {
	t.Helper()
	done := make(chan struct{})
	b := &fakeBackend{probe: true, acquire: func(ctx context.Context, id string, onProgress func(float64)) (Session, error) {
		<-done
		return &fakeSession{}, nil
	}}
	m := New(b, Config{PollInterval: 3 * time.Millisecond, StallAfter: 10 * time.Millisecond}, pub)
	m.Acquire(context.Background(), "m1")
	return m, done
}

func TestStallHintEmittedOncePerAttempt(t *testing.T) {
	pub := events.NewMemoryPublisher()
	m, done := stalledManager(t, pub)
	defer close(done)

	waitFor(t, time.Second, func() bool { return m.Snapshot().Hint != "" })
	// Let the watchdog tick several more times; the hint stays one-shot.
	time.Sleep(30 * time.Millisecond)
	if got := pub.Count("engine", "stall_hint"); got != 1 {
		t.Fatalf("expected exactly one stall hint, got %d", got)
	}
}

func TestStallHintClearedOnRetryThenReemitted(t *testing.T) {
	pub := events.NewMemoryPublisher()
	m, done := stalledManager(t, pub)
	defer close(done)

	waitFor(t, time.Second, func() bool { return m.Snapshot().Hint != "" })
	m.Retry(context.Background())
	if m.Snapshot().Hint != "" {
		t.Fatalf("expected hint cleared on retry")
	}
	// The fresh attempt stalls too and earns its own hint.
	waitFor(t, time.Second, func() bool { return m.Snapshot().Hint != "" })
	if got := pub.Count("engine", "stall_hint"); got != 2 {
		t.Fatalf("expected one hint per attempt, got %d", got)
	}
}

func TestWatchdogStopsWhenReady(t *testing.T) {
	pub := events.NewMemoryPublisher()
	b := &fakeBackend{probe: true, acquire: func(ctx context.Context, id string, onProgress func(float64)) (Session, error) {
		onProgress(1)
		return &fakeSession{}, nil
	}}
	m := New(b, Config{PollInterval: 3 * time.Millisecond, StallAfter: 10 * time.Millisecond}, pub)
	m.Acquire(context.Background(), "m1")
	waitFor(t, time.Second, func() bool { return m.Ready() })

	time.Sleep(30 * time.Millisecond)
	if got := pub.Count("engine", "stall_hint"); got != 0 {
		t.Fatalf("watchdog hinted after ready: %d", got)
	}
}
