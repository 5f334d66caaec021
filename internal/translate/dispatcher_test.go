package translate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"plainspeak/internal/engine"
)

// stubEngine serves Snapshot/Generate from fixed values or hooks.
type stubEngine struct {
	mu       sync.Mutex
	snapshot engine.Snapshot
	generate func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error)
	calls    int
}

func readyEngine(generate func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error)) *stubEngine {
	return &stubEngine{snapshot: engine.Snapshot{State: engine.StateReady}, generate: generate}
}

func (e *stubEngine) Snapshot() engine.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

func (e *stubEngine) Generate(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	return e.generate(ctx, msgs, params)
}

func (e *stubEngine) generateCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func TestTranslateEmptyInputNeverContactsEngine(t *testing.T) {
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		return "should not run", nil
	})
	d := New(eng, nil, nil)

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := d.Translate(context.Background(), input, ModeCorporateToPlain)
		if !IsEmptyInput(err) {
			t.Fatalf("input %q: expected empty-input, got %v", input, err)
		}
	}
	if eng.generateCalls() != 0 {
		t.Fatalf("engine contacted for empty input")
	}
}

func TestTranslateUnknownMode(t *testing.T) {
	eng := readyEngine(nil)
	d := New(eng, nil, nil)
	_, err := d.Translate(context.Background(), "hi", Mode("sideways"))
	if !IsUnknownMode(err) {
		t.Fatalf("expected unknown-mode, got %v", err)
	}
}

func TestTranslateEngineFailedSurfacesItsMessage(t *testing.T) {
	eng := &stubEngine{snapshot: engine.Snapshot{State: engine.StateFailed, Message: "x"}}
	d := New(eng, nil, nil)
	_, err := d.Translate(context.Background(), "hi", ModePlainToCorporate)
	if !IsEngineNotReady(err) {
		t.Fatalf("expected engine-not-ready, got %v", err)
	}
	if err.Error() != "x" {
		t.Fatalf("expected surfaced message %q, got %q", "x", err.Error())
	}
}

func TestTranslateWhileLoadingIsNotReady(t *testing.T) {
	eng := &stubEngine{snapshot: engine.Snapshot{State: engine.StateLoading, Message: "loading model (40%)"}}
	d := New(eng, nil, nil)
	_, err := d.Translate(context.Background(), "hi", ModePlainToCorporate)
	if !IsEngineNotReady(err) {
		t.Fatalf("expected engine-not-ready, got %v", err)
	}
}

func TestTranslateSuccessStoresResult(t *testing.T) {
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		return "No.", nil
	})
	d := New(eng, nil, nil)

	res, err := d.Translate(context.Background(), "We can't approve vacation right now.", ModeCorporateToPlain)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.Output != "No." {
		t.Fatalf("expected output %q, got %q", "No.", res.Output)
	}
	if d.InFlight() {
		t.Fatalf("in-flight flag not cleared")
	}
	last, ok := d.Last()
	if !ok || last.Output != "No." || last.Input != "We can't approve vacation right now." {
		t.Fatalf("last result not stored: %+v ok=%v", last, ok)
	}
}

func TestTranslateRejectsSecondRequestInFlight(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		close(started)
		<-unblock
		return "slow answer", nil
	})
	d := New(eng, nil, nil)

	type outcome struct {
		res Result
		err error
	}
	firstDone := make(chan outcome, 1)
	go func() {
		res, err := d.Translate(context.Background(), "first", ModeCorporateToPlain)
		firstDone <- outcome{res, err}
	}()
	<-started

	_, err := d.Translate(context.Background(), "second", ModeCorporateToPlain)
	if !IsAlreadyInFlight(err) {
		t.Fatalf("expected already-in-flight, got %v", err)
	}

	// The rejection leaves the first call's resolution unaffected.
	close(unblock)
	select {
	case out := <-firstDone:
		if out.err != nil || out.res.Output != "slow answer" {
			t.Fatalf("first call affected by rejection: %+v %v", out.res, out.err)
		}
	case <-time.After(time.Second):
		t.Fatalf("first call never resolved")
	}
	if d.InFlight() {
		t.Fatalf("in-flight flag not cleared after completion")
	}
}

func TestTranslateBackendFailureClearsInFlight(t *testing.T) {
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		return "", errors.New("boom from backend")
	})
	d := New(eng, nil, nil)

	_, err := d.Translate(context.Background(), "hi", ModePlainToCorporate)
	if !IsGenerationFailed(err) {
		t.Fatalf("expected generation-failed, got %v", err)
	}
	if err.Error() != "boom from backend" {
		t.Fatalf("expected backend detail, got %q", err.Error())
	}
	if d.InFlight() {
		t.Fatalf("in-flight flag not cleared after failure")
	}
	if _, ok := d.Last(); ok {
		t.Fatalf("failed request stored a result")
	}
}

func TestTranslateEmptyGeneration(t *testing.T) {
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		return "   ", nil
	})
	d := New(eng, nil, nil)
	_, err := d.Translate(context.Background(), "hi", ModeCorporateToPlain)
	if !IsEmptyGeneration(err) {
		t.Fatalf("expected empty-generation, got %v", err)
	}
	if _, ok := d.Last(); ok {
		t.Fatalf("empty generation stored a result")
	}
}

func TestTranslateForwardsToSpeakSink(t *testing.T) {
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		return "read me aloud", nil
	})
	var spoken []string
	d := New(eng, nil, func(text string) { spoken = append(spoken, text) })

	if _, err := d.Translate(context.Background(), "hi", ModeCorporateToPlain); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if len(spoken) != 1 || spoken[0] != "read me aloud" {
		t.Fatalf("speak sink not invoked: %v", spoken)
	}
}

func TestClearLast(t *testing.T) {
	eng := readyEngine(func(ctx context.Context, msgs []engine.Message, params engine.GenParams) (string, error) {
		return "out", nil
	})
	d := New(eng, nil, nil)
	if _, err := d.Translate(context.Background(), "in", ModeCorporateToPlain); err != nil {
		t.Fatalf("translate: %v", err)
	}
	d.ClearLast()
	if _, ok := d.Last(); ok {
		t.Fatalf("expected last result cleared")
	}
}
