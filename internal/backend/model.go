package backend

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider names a backend variant.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderXAI    Provider = "xai"
	ProviderStub   Provider = "stub"
)

// Providers lists every supported variant.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderXAI, ProviderStub}
}

// ParseProvider resolves a configured provider name.
func ParseProvider(name string) (Provider, error) {
	provider := Provider(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Providers() {
		if provider == known {
			return provider, nil
		}
	}
	return "", fmt.Errorf("unsupported provider %q", name)
}

// Purpose tells a backend why it is being called.
type Purpose string

const (
	PurposeSolve  Purpose = "solve"
	PurposeVerify Purpose = "verify"
)

// Request is a single chat completion request.
type Request struct {
	Purpose     Purpose
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Response carries the completion text and how long it took.
type Response struct {
	Text    string
	Latency time.Duration
}

// Model is the language-model capability shared by solvers and checkers.
type Model interface {
	Name() string
	Complete(ctx context.Context, req Request) (Response, error)
}

// BackendError wraps any failure of a backend call.
type BackendError struct {
	Provider Provider
	Op       string
	Err      error
}

// Error formats the failing provider and operation.
func (err *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %v", err.Provider, err.Op, err.Err)
}

// Unwrap returns the underlying error.
func (err *BackendError) Unwrap() error {
	return err.Err
}
