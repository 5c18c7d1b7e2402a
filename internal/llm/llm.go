package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation provider used for career recommendations.
// Implementations return the model's raw text; callers must not assume it is valid JSON.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is used when no provider credentials are configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	_ = ctx
	_ = system
	_ = prompt
	return "", ErrNotImplemented
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, system, prompt string) (string, error)

func (f ClientFunc) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}
