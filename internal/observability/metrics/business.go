package metrics

import (
	"time"
)

// Outcomes recorded by RecordNewsRequest.
const (
	OutcomeOK               = "ok"
	OutcomeFallbackShape    = "fallback_shape"
	OutcomeFallbackProvider = "fallback_provider"
)

// RecordNewsRequest counts one completed news fetch.
func RecordNewsRequest(outcome string) {
	NewsRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordItemsReturned records the size of an accepted list.
func RecordItemsReturned(count int) {
	NewsItemsReturned.Observe(float64(count))
}

// RecordProviderCall records the latency of one provider round trip, successful or not.
func RecordProviderCall(provider string, duration time.Duration) {
	ProviderDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordProviderError counts a failed provider call.
func RecordProviderError(provider string) {
	ProviderErrorsTotal.WithLabelValues(provider).Inc()
}

// SetCircuitOpen publishes the breaker state for provider.
func SetCircuitOpen(provider string, open bool) {
	v := 0.0
	if open {
		v = 1.0
	}
	ProviderCircuitOpen.WithLabelValues(provider).Set(v)
}
