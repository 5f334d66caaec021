package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeSession is a controllable Session for tests.
type fakeSession struct {
	mu         sync.Mutex
	releases   int
	generate   func(ctx context.Context, msgs []Message, params GenParams) (string, error)
	releaseErr error
}

func (s *fakeSession) Generate(ctx context.Context, msgs []Message, params GenParams) (string, error) {
	if s.generate != nil {
		return s.generate(ctx, msgs, params)
	}
	return "", errors.New("no generate func")
}

func (s *fakeSession) Release() error {
	s.mu.Lock()
	s.releases++
	s.mu.Unlock()
	return s.releaseErr
}

func (s *fakeSession) releaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releases
}

// fakeBackend is a controllable Backend for tests.
type fakeBackend struct {
	probe   bool
	acquire func(ctx context.Context, modelID string, onProgress func(float64)) (Session, error)

	mu       sync.Mutex
	acquires int
}

func (b *fakeBackend) Probe() bool { return b.probe }

func (b *fakeBackend) Acquire(ctx context.Context, modelID string, onProgress func(float64)) (Session, error) {
	b.mu.Lock()
	b.acquires++
	b.mu.Unlock()
	if b.acquire != nil {
		return b.acquire(ctx, modelID, onProgress)
	}
	return &fakeSession{}, nil
}

func (b *fakeBackend) acquireCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.acquires
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", d)
}
