// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats (LOG_FORMAT)
//   - Request ID and trace ID propagation
//   - Context-aware logging
//   - Configurable log levels (LOG_LEVEL)
//
// Example usage:
//
//	import "github.com/budge42/novanews/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewFromEnv()
//	    slog.SetDefault(logger)
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.FromContext(ctx)
//	    logger.Info("fetching news")
//	}
package logging
