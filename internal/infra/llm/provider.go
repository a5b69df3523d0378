// Package llm adapts external large-language-model APIs to the news pipeline.
// Every adapter turns a topic and offset into the provider's raw text reply;
// parsing that text is left to the caller.
//
// Three request shapes are available: an OpenAI chat completion, an OpenAI
// Responses call with the web search tool forced on, and an Anthropic Messages
// call. Each one runs under a timeout and a circuit breaker, and any failure
// comes back as a *ProviderError.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/budge42/novanews/internal/resilience/circuitbreaker"
)

// Provider fetches raw news text from an LLM.
type Provider interface {
	// FetchRawNews asks the model for news about topic, skipping the first offset stories.
	FetchRawNews(ctx context.Context, topic string, offset int) (string, error)
	// Name identifies the provider in logs and metrics.
	Name() string
	// Breaker exposes the circuit breaker guarding the provider.
	Breaker() *circuitbreaker.CircuitBreaker
}

// Searcher sends a free-form query to a web-search-enabled model.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// ErrProvider matches every *ProviderError via errors.Is.
var ErrProvider = errors.New("llm provider error")

// ErrEmptyResponse means the provider answered but the envelope held no text.
var ErrEmptyResponse = errors.New("provider response contained no text")

// ProviderError is the single error kind returned by adapters.
// It covers network failures, non-2xx statuses, malformed envelopes,
// timeouts and circuit breaker rejections.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrProvider.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// StatusError is a non-2xx reply from an HTTP API called without an SDK.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}
