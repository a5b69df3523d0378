// Package resilience provides fault tolerance patterns for calls to the LLM provider.
//
// Provider calls are never retried. The only pattern here is a circuit breaker:
// once the provider keeps failing, requests fail fast and callers serve the
// fallback list instead of waiting out the full provider timeout.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.Config{
//	    Name:             "openai-chat",
//	    MaxRequests:      3,
//	    Interval:         30 * time.Second,
//	    Timeout:          60 * time.Second,
//	    FailureThreshold: 0.6,
//	    MinRequests:      5,
//	})
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callProvider(ctx)
//	})
package resilience
