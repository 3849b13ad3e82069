// Package ai holds the provider-neutral completion port used for structured
// extraction, and the adapter that turns free-form completions into JSON.
package ai

import (
	"context"
	"fmt"
)

// CompletionRequest is a single prompt sent to a text completion model.
type CompletionRequest struct {
	Prompt          string
	Temperature     float32
	MaxOutputTokens int
}

// Completer is an opaque and unreliable text completion dependency.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Model() string
}

// ServiceError wraps transport, timeout and empty-response failures of a Completer.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
