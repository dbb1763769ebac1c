package providers

import (
	"context"
	"fmt"
)

// ResponseFormat hints at the shape of output we want back from the model.
type ResponseFormat string

const (
	// FormatText requests free-form text.
	FormatText ResponseFormat = "text"
	// FormatJSON requests JSON. Gemini honors it natively via the response
	// MIME type; the other providers rely on prompt instructions alone.
	FormatJSON ResponseFormat = "json"
)

// Request is a single-turn prompt sent to a provider.
type Request struct {
	Prompt    string
	MaxTokens int
	Format    ResponseFormat
}

// Provider is one LLM REST API variant. Invoke sends a single-turn prompt
// authenticated with the given credential and returns the model's text
// output. The three variants differ only in request shape, auth header
// placement, and response unwrapping.
type Provider interface {
	Invoke(ctx context.Context, key string, req Request) (string, error)
	Name() string
}

// Invoker is the uniform call contract the analysis pipeline depends on.
// *Client satisfies it with key rotation layered on top of a Provider.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
	Name() string
}

// New returns a provider variant by name.
func New(provider, model string) (Provider, error) {
	switch provider {
	case "gemini", "google":
		return NewGemini(model), nil
	case "openai":
		return NewOpenAI(model), nil
	case "anthropic":
		return NewAnthropic(model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
