package llm_test

import (
	"sync"
	"time"

	"github.com/budge42/novanews/internal/config"
)

const validReply = `[{"title":"t","summary":"s","source":"x","date":"2024-05-01"}]`

func testConfig(mode config.ProviderMode, baseURL string) *config.NewsConfig {
	return &config.NewsConfig{
		Mode:             mode,
		OpenAIAPIKey:     "sk-test-key",
		AnthropicAPIKey:  "sk-ant-test-key",
		OpenAIBaseURL:    baseURL,
		AnthropicBaseURL: baseURL,
		Model:            "test-model",
		SearchModel:      "test-search-model",
		Temperature:      0.6,
		MaxTokens:        1100,
		Timeout:          2 * time.Second,
		Location:         config.LocationConfig{Country: "NZ", City: "Auckland", Region: "Auckland"},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 0.6,
			MinRequests:      3,
		},
	}
}

// fakeMetrics records calls made through llm.MetricsRecorder.
type fakeMetrics struct {
	mu        sync.Mutex
	durations map[string]int
	errors    map[string]int
	open      map[string]bool
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		durations: map[string]int{},
		errors:    map[string]int{},
		open:      map[string]bool{},
	}
}

func (f *fakeMetrics) RecordDuration(provider string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.durations[provider]++
}

func (f *fakeMetrics) RecordError(provider string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[provider]++
}

func (f *fakeMetrics) RecordCircuitState(provider string, open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open[provider] = open
}
