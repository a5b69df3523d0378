// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - News pipeline outcomes (accepted list, shape fallback, provider fallback)
//   - LLM provider latency, errors and circuit breaker state
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "github.com/budge42/novanews/internal/observability/metrics"
//
//	func fetch(ctx context.Context) {
//	    start := time.Now()
//	    // ... call provider ...
//	    metrics.RecordProviderCall("openai-chat", time.Since(start))
//	    metrics.RecordNewsRequest(metrics.OutcomeOK)
//	}
package metrics
