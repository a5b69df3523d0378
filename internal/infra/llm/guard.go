package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/budge42/novanews/internal/config"
	"github.com/budge42/novanews/internal/observability/logging"
	"github.com/budge42/novanews/internal/observability/tracing"
	"github.com/budge42/novanews/internal/resilience/circuitbreaker"
)

// guard wraps one provider call with a span, a timeout and the circuit breaker,
// and converts every failure into a *ProviderError. There is no retry.
type guard struct {
	name    string
	timeout time.Duration
	breaker *circuitbreaker.CircuitBreaker
	metrics MetricsRecorder
}

func newGuard(name string, timeout time.Duration, cb config.CircuitBreakerConfig, rec MetricsRecorder) guard {
	if rec == nil {
		rec = NewPrometheusMetrics()
	}
	return guard{
		name:    name,
		timeout: timeout,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:             name,
			MaxRequests:      cb.MaxRequests,
			Interval:         cb.Interval,
			Timeout:          cb.Timeout,
			FailureThreshold: cb.FailureThreshold,
			MinRequests:      cb.MinRequests,
			OnStateChange: func(name string, _, to gobreaker.State) {
				rec.RecordCircuitState(name, to == gobreaker.StateOpen)
			},
		}),
		metrics: rec,
	}
}

// Name returns the provider name used in logs and metrics.
func (g *guard) Name() string {
	return g.name
}

// Breaker returns the circuit breaker guarding this provider.
func (g *guard) Breaker() *circuitbreaker.CircuitBreaker {
	return g.breaker
}

func (g *guard) run(ctx context.Context, op string, fn func(ctx context.Context) (string, error)) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "llm."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("llm.provider", g.name)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	logger := logging.FromContext(ctx)
	called := false
	start := time.Now()

	out, err := g.breaker.Execute(func() (interface{}, error) {
		called = true
		return fn(ctx)
	})

	duration := time.Since(start)
	if called {
		g.metrics.RecordDuration(g.name, duration)
	}
	g.metrics.RecordCircuitState(g.name, g.breaker.IsOpen())

	if err != nil {
		g.metrics.RecordError(g.name)
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")

		if circuitbreaker.IsRejection(err) {
			logger.WarnContext(ctx, "llm provider circuit breaker open, request rejected",
				slog.String("provider", g.name),
				slog.String("state", g.breaker.State().String()))
			err = fmt.Errorf("provider unavailable: %w", err)
		}
		return "", &ProviderError{Provider: g.name, Err: err}
	}

	text, _ := out.(string)
	span.SetAttributes(attribute.Int("llm.response_bytes", len(text)))
	logger.DebugContext(ctx, "llm provider call completed",
		slog.String("provider", g.name),
		slog.String("operation", op),
		slog.Int("response_bytes", len(text)),
		slog.Duration("duration", duration))

	return text, nil
}
