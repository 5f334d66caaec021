//go:build llama

package engine

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"plainspeak/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// LocalBackend loads a gguf model in-process via llama.cpp.
type LocalBackend struct {
	registry []types.Model
	ctxSize  int
	threads  int
}

// NewLocalBackend builds a backend over the scanned model registry.
func NewLocalBackend(registry []types.Model, ctxSize, threads int) *LocalBackend {
	return &LocalBackend{registry: registry, ctxSize: ctxSize, threads: threads}
}

// Probe reports true: the llama runtime is compiled in and usable.
func (b *LocalBackend) Probe() bool { return len(b.registry) > 0 }

func (b *LocalBackend) Acquire(ctx context.Context, modelID string, onProgress func(float64)) (Session, error) {
	path, ok := b.resolve(modelID)
	if !ok {
		return nil, errors.New("model not found: " + modelID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// llama.New exposes no load progress hooks, so loading is reported as
	// indeterminate: zero at the start, complete once the weights are in.
	if onProgress != nil {
		onProgress(0)
	}
	m, err := llama.New(path, llama.SetContext(b.ctxSize))
	if err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(1)
	}
	return &llamaSession{model: m, threads: b.threads}, nil
}

func (b *LocalBackend) resolve(modelID string) (string, bool) {
	for _, m := range b.registry {
		if m.ID == modelID {
			return m.Path, true
		}
	}
	return "", false
}

type llamaSession struct {
	model   *llama.LLama
	threads int
}

func (s *llamaSession) Generate(ctx context.Context, msgs []Message, params GenParams) (string, error) {
	if s.model == nil {
		return "", errors.New("llama model not initialized")
	}
	s.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	po := []llama.PredictOption{
		llama.SetTokens(maxInt(1, params.MaxTokens)),
		llama.SetThreads(maxInt(1, s.threads)),
		llama.SetTemperature(nonZero(params.Temperature, llama.DefaultOptions.Temperature)),
		llama.SetTopP(nonZero(params.TopP, llama.DefaultOptions.TopP)),
	}
	text, err := s.model.Predict(flattenPrompt(msgs), po...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}

func (s *llamaSession) Release() error {
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

// flattenPrompt renders role-structured messages for a base completion model.
func flattenPrompt(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nonZero(v, def float32) float32 {
	if v > 0 {
		return v
	}
	return def
}
