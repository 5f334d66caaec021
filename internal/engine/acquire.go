package engine

import (
	"context"
	"fmt"
	"time"

	"plainspeak/internal/events"
)

// Acquire begins loading the given model. The capability probe gates the
// attempt: without inference support the manager transitions straight to
// Failed and the backend is never contacted. Loading itself runs in the
// background; observers follow it through Snapshot().
func (m *Manager) Acquire(ctx context.Context, modelID string) {
	if !m.Probe() {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return
		}
		m.state = StateFailed
		m.message = unsupportedError{}.Error()
		m.hint = ""
		m.fraction = nil
		m.mu.Unlock()
		acquisitionsTotal.WithLabelValues("unsupported").Inc()
		m.publisher.Publish(events.Event{Component: "engine", Name: "acquire_failed",
			Fields: map[string]any{"error": unsupportedError{}.Error()}})
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.attempt++
	token := m.attempt
	m.modelID = modelID
	m.state = StateLoading
	m.message = "loading model"
	m.hint = ""
	m.fraction = nil
	m.sample = progressSample{value: 0, observedAt: time.Now()}
	old := m.session
	m.session = nil
	m.mu.Unlock()

	if old != nil {
		_ = old.Release()
	}
	m.publisher.Publish(events.Event{Component: "engine", Name: "acquire_start",
		Fields: map[string]any{"model": modelID}})

	go m.watch(token)
	go m.load(ctx, token, modelID)
}

// Retry discards any existing session and starts a fresh acquisition with
// the model from the previous attempt. The progress sample resets to zero
// and the stall hint clears; late callbacks from the superseded attempt are
// discarded by the token check.
func (m *Manager) Retry(ctx context.Context) {
	m.mu.RLock()
	modelID := m.modelID
	m.mu.RUnlock()
	m.publisher.Publish(events.Event{Component: "engine", Name: "retry"})
	m.Acquire(ctx, modelID)
}

func (m *Manager) load(ctx context.Context, token uint64, modelID string) {
	sess, err := m.backend.Acquire(ctx, modelID, func(v float64) {
		m.observeProgress(token, v)
	})

	m.mu.Lock()
	if m.closed || token != m.attempt {
		m.mu.Unlock()
		// A newer attempt (or teardown) owns the state now; release the
		// orphaned session best-effort and walk away.
		if sess != nil {
			_ = sess.Release()
		}
		return
	}
	if err != nil {
		m.state = StateFailed
		m.message = err.Error()
		m.hint = ""
		m.fraction = nil
		m.mu.Unlock()
		acquisitionsTotal.WithLabelValues("failed").Inc()
		m.publisher.Publish(events.Event{Component: "engine", Name: "acquire_failed",
			Fields: map[string]any{"model": modelID, "error": err.Error()}})
		return
	}
	m.session = sess
	m.state = StateReady
	m.message = ""
	m.hint = ""
	one := 1.0
	m.fraction = &one
	m.mu.Unlock()
	acquisitionsTotal.WithLabelValues("ready").Inc()
	m.publisher.Publish(events.Event{Component: "engine", Name: "acquire_ready",
		Fields: map[string]any{"model": modelID}})
}

// observeProgress folds one progress callback into the stored sample. The
// fraction never decreases within an attempt, and samples from a stale
// attempt never touch the state of a newer one.
func (m *Manager) observeProgress(token uint64, v float64) {
	m.mu.Lock()
	if m.closed || token != m.attempt || m.state != StateLoading {
		m.mu.Unlock()
		return
	}
	if v < m.sample.value {
		v = m.sample.value
	}
	if v > 1 {
		v = 1
	}
	m.sample = progressSample{value: v, observedAt: time.Now()}
	f := v
	m.fraction = &f
	if v > 0.99 {
		m.message = "almost there, finishing up"
	} else {
		m.message = fmt.Sprintf("loading model (%d%%)", int(v*100))
	}
	m.mu.Unlock()

	m.publisher.Publish(events.Event{Component: "engine", Name: "progress",
		Fields: map[string]any{"fraction": v}})
}

// watch is the stall watchdog for one acquisition attempt. It polls while
// the attempt is loading and emits the advisory hint at most once, then
// keeps polling until the attempt resolves. The hint is advisory only; it
// never aborts the load.
func (m *Manager) watch(token uint64) {
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()
	for range ticker.C {
		m.mu.Lock()
		if m.closed || token != m.attempt || m.state != StateLoading {
			m.mu.Unlock()
			return
		}
		stalled := m.hint == "" &&
			m.sample.value < 1 &&
			time.Since(m.sample.observedAt) >= m.cfg.StallAfter
		if stalled {
			m.hint = "this is taking longer than usual, check your connection"
		}
		m.mu.Unlock()
		if stalled {
			stallHintsTotal.Inc()
			m.publisher.Publish(events.Event{Component: "engine", Name: "stall_hint"})
		}
	}
}
