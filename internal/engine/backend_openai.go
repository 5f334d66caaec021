package engine

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// RemoteBackend drives an OpenAI-compatible chat-completions endpoint.
// Acquisition is cheap (no local load phase), so progress jumps straight to
// complete once the client is constructed.
type RemoteBackend struct {
	client *openai.Client
	apiKey string
}

// NewRemoteBackend builds a backend against baseURL (empty keeps the
// provider default).
func NewRemoteBackend(baseURL, apiKey string) *RemoteBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &RemoteBackend{client: openai.NewClientWithConfig(cfg), apiKey: apiKey}
}

// Probe reports false without credentials: no key means the remote capability
// is structurally unavailable, not transiently failing.
func (b *RemoteBackend) Probe() bool { return strings.TrimSpace(b.apiKey) != "" }

func (b *RemoteBackend) Acquire(ctx context.Context, modelID string, onProgress func(float64)) (Session, error) {
	if strings.TrimSpace(modelID) == "" {
		return nil, errors.New("model id is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(1)
	}
	return &remoteSession{client: b.client, model: modelID}, nil
}

type remoteSession struct {
	client *openai.Client
	model  string
}

func (s *remoteSession) Generate(ctx context.Context, msgs []Message, params GenParams) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    toChatMessages(msgs),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		TopP:        params.TopP,
		Stream:      false,
	}
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		// Surface the provider's embedded error message when present.
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return "", errors.New(apiErr.Message)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Release is a no-op: remote sessions hold no local resources.
func (s *remoteSession) Release() error { return nil }

func toChatMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
