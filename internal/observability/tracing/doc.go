// Package tracing provides OpenTelemetry tracing integration.
//
// It installs the SDK tracer provider at startup, wraps the HTTP server in a
// span-per-request middleware and exposes the tracer used for child spans such
// as the outbound LLM provider call.
//
// Example usage:
//
//	import "github.com/budge42/novanews/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitProvider()
//	    defer shutdown(context.Background())
//	}
//
//	func callProvider(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "llm.fetch_raw_news")
//	    defer span.End()
//	}
package tracing
