package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request captures a single system+user exchange.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	// JSONMode asks the provider for a json_object response format.
	JSONMode bool
}

var (
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm client not configured")
	// ErrMalformedResponse marks a 2xx reply whose envelope could not be read.
	ErrMalformedResponse = errors.New("malformed llm response")
)

// PlaceholderClient is used when no provider credentials are configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// StatusError reports a non-2xx response from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm http status %d: %s", e.StatusCode, e.Body)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
