package llm

import (
	"time"

	"github.com/budge42/novanews/internal/observability/metrics"
)

// MetricsRecorder records provider call metrics.
// Tests inject a fake; production code uses PrometheusMetrics.
type MetricsRecorder interface {
	// RecordDuration records the latency of a call that reached the provider.
	RecordDuration(provider string, duration time.Duration)

	// RecordError counts a failed call, including circuit breaker rejections.
	RecordError(provider string)

	// RecordCircuitState publishes whether the breaker is open after a call.
	RecordCircuitState(provider string, open bool)
}

// PrometheusMetrics implements MetricsRecorder on the shared Prometheus registry.
type PrometheusMetrics struct{}

// NewPrometheusMetrics returns the production metrics recorder.
func NewPrometheusMetrics() PrometheusMetrics {
	return PrometheusMetrics{}
}

// RecordDuration implements MetricsRecorder.RecordDuration
func (PrometheusMetrics) RecordDuration(provider string, duration time.Duration) {
	metrics.RecordProviderCall(provider, duration)
}

// RecordError implements MetricsRecorder.RecordError
func (PrometheusMetrics) RecordError(provider string) {
	metrics.RecordProviderError(provider)
}

// RecordCircuitState implements MetricsRecorder.RecordCircuitState
func (PrometheusMetrics) RecordCircuitState(provider string, open bool) {
	metrics.SetCircuitOpen(provider, open)
}
