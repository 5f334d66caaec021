package engine

import "context"

// Message is one role-addressed chunk of a chat-style prompt.
type Message struct {
	Role    string
	Content string
}

// Prompt roles understood by every backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// GenParams captures generation parameters passed to the backend.
type GenParams struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// Backend abstracts the text-generation runtime behind the manager.
// Concrete implementations (llama.cpp, remote chat-completions) satisfy it.
type Backend interface {
	// Probe reports whether this backend can run in the current environment.
	Probe() bool
	// Acquire loads or connects the model. onProgress, when non-nil, is
	// invoked with values in [0,1] as loading advances; it may be called
	// from another goroutine.
	Acquire(ctx context.Context, modelID string, onProgress func(float64)) (Session, error)
}

// Session is a live engine session able to serve generation requests.
type Session interface {
	// Generate produces a completion for the given messages. Implementations
	// must return when the context is canceled.
	Generate(ctx context.Context, msgs []Message, params GenParams) (string, error)
	// Release frees backend resources. Best-effort; failures are swallowed
	// by the manager.
	Release() error
}
