// Package observability provides the observability infrastructure
// including structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
//
// Example usage:
//
//	import (
//	    "github.com/budge42/novanews/internal/observability/logging"
//	    "github.com/budge42/novanews/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewFromEnv()
//	    logger.Info("application started")
//
//	    metrics.RecordNewsRequest(metrics.OutcomeOK)
//	}
package observability
