//go:build !llama

package engine

// This file provides a no-CGO stub for the local llama backend. It is
// compiled when the 'llama' build tag is NOT set, keeping default builds and
// CI CGO-free. The real backend lives in backend_llama.go (tagged 'llama').

import (
	"context"

	"plainspeak/pkg/types"
)

var llamaBuilt = false

// LocalBackend is a stub that satisfies Backend but reports the accelerated
// inference capability as unavailable. The manager then fails proactively
// instead of discovering the missing runtime through a load error.
type LocalBackend struct {
	registry []types.Model
	ctxSize  int
	threads  int
}

func NewLocalBackend(registry []types.Model, ctxSize, threads int) *LocalBackend {
	return &LocalBackend{registry: registry, ctxSize: ctxSize, threads: threads}
}

// Probe reports false: llama support is not built into this binary.
func (b *LocalBackend) Probe() bool { return false }

func (b *LocalBackend) Acquire(ctx context.Context, modelID string, onProgress func(float64)) (Session, error) {
	return nil, ErrUnsupported()
}
