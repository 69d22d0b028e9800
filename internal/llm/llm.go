package llm

import (
	"context"
	"errors"
)

// Completer sends a single prompt to a language model and returns the raw
// text it produced.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Named is implemented by completers that can report their provider and model.
type Named interface {
	Name() string
}

// ErrNotConfigured is returned by the placeholder client when no provider
// credentials are available.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient stands in for a real provider and always fails, which
// sends callers down their non-AI path.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// Name reports the placeholder as "none".
func (PlaceholderClient) Name() string { return "none" }

// NameOf returns the completer's name, or "unknown" when it does not say.
func NameOf(c Completer) string {
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return "unknown"
}
