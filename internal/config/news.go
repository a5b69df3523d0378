// Package config assembles the application configuration from environment variables
// and the optional prompt override file.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	envcfg "github.com/budge42/novanews/pkg/config"
)

// ProviderMode selects which request shape the LLM adapter uses.
type ProviderMode string

const (
	// ModeChat sends a two-message chat completion to OpenAI.
	ModeChat ProviderMode = "chat"
	// ModeWebSearch uses the OpenAI Responses API with the web search tool forced on.
	ModeWebSearch ProviderMode = "websearch"
	// ModeClaude sends the chat prompts to Anthropic's Messages API.
	ModeClaude ProviderMode = "claude"
)

// defaultModels maps each mode to the model used when NEWS_MODEL is unset.
var defaultModels = map[ProviderMode]string{
	ModeChat:      "gpt-4o-mini",
	ModeWebSearch: "gpt-4.1",
	ModeClaude:    "claude-sonnet-4-5-20250929",
}

// apiKeyVars names the credential each mode needs.
var apiKeyVars = map[ProviderMode]string{
	ModeChat:      "OPENAI_API_KEY",
	ModeWebSearch: "OPENAI_API_KEY",
	ModeClaude:    "ANTHROPIC_API_KEY",
}

// NewsConfig holds everything needed to build the LLM adapter and the news service.
type NewsConfig struct {
	// Mode is the provider request shape. Default: chat
	Mode ProviderMode

	// OpenAIAPIKey is read from OPENAI_API_KEY. Required for chat and websearch modes.
	OpenAIAPIKey string
	// AnthropicAPIKey is read from ANTHROPIC_API_KEY. Required for claude mode.
	AnthropicAPIKey string

	// OpenAIBaseURL overrides the OpenAI endpoint (proxies, compatible gateways).
	OpenAIBaseURL string
	// AnthropicBaseURL overrides the Anthropic endpoint.
	AnthropicBaseURL string

	// Model is the provider model identifier.
	Model string
	// SearchModel is the OpenAI model used by the search passthrough. Default: gpt-4o
	SearchModel string
	// Temperature for chat-style requests. Default: 0.6
	Temperature float64
	// MaxTokens caps the provider reply. Default: 1100
	MaxTokens int
	// Timeout bounds a single provider call. Default: 30s
	Timeout time.Duration

	// StrictDate makes the validator require YYYY-MM-DD dates.
	StrictDate bool

	// Location is the coarse geographic hint sent with web search requests.
	Location LocationConfig

	// Prompts overrides the built-in prompt text when set.
	Prompts PromptOverrides

	// CircuitBreaker guards provider calls.
	CircuitBreaker CircuitBreakerConfig
}

// LocationConfig is an approximate user location for web search.
type LocationConfig struct {
	Country string `yaml:"country"`
	City    string `yaml:"city"`
	Region  string `yaml:"region"`
}

// CircuitBreakerConfig for provider resilience.
type CircuitBreakerConfig struct {
	// MaxRequests in half-open state.
	MaxRequests uint32
	// Interval for clearing failure counts.
	Interval time.Duration
	// Timeout before transitioning from open to half-open.
	Timeout time.Duration
	// FailureThreshold ratio to trip circuit (0.0 to 1.0).
	FailureThreshold float64
	// MinRequests before calculating failure ratio.
	MinRequests uint32
}

// LoadNewsConfig loads the news configuration from environment variables.
// When NEWS_PROMPT_CONFIG names a YAML file, its prompt and location values
// replace the defaults. The result is validated before it is returned.
func LoadNewsConfig() (*NewsConfig, error) {
	mode := ProviderMode(strings.ToLower(envcfg.GetEnvString("NEWS_PROVIDER_MODE", string(ModeChat))))

	cbMaxRequests, err := getEnvCount("NEWS_CB_MAX_REQUESTS", 3)
	if err != nil {
		return nil, err
	}
	cbMinRequests, err := getEnvCount("NEWS_CB_MIN_REQUESTS", 5)
	if err != nil {
		return nil, err
	}

	cfg := &NewsConfig{
		Mode:             mode,
		OpenAIAPIKey:     envcfg.GetEnvString("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  envcfg.GetEnvString("ANTHROPIC_API_KEY", ""),
		OpenAIBaseURL:    envcfg.GetEnvString("OPENAI_BASE_URL", ""),
		AnthropicBaseURL: envcfg.GetEnvString("ANTHROPIC_BASE_URL", ""),
		Model:            envcfg.GetEnvString("NEWS_MODEL", defaultModels[mode]),
		SearchModel:      envcfg.GetEnvString("NEWS_SEARCH_MODEL", "gpt-4o"),
		Temperature:      envcfg.GetEnvFloat("NEWS_TEMPERATURE", 0.6),
		MaxTokens:        envcfg.GetEnvInt("NEWS_MAX_TOKENS", 1100),
		Timeout:          envcfg.GetEnvDuration("NEWS_PROVIDER_TIMEOUT", 30*time.Second),
		StrictDate:       envcfg.GetEnvBool("NEWS_STRICT_DATE", false),
		Location: LocationConfig{
			Country: envcfg.GetEnvString("NEWS_LOCATION_COUNTRY", "NZ"),
			City:    envcfg.GetEnvString("NEWS_LOCATION_CITY", "Auckland"),
			Region:  envcfg.GetEnvString("NEWS_LOCATION_REGION", "Auckland"),
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      cbMaxRequests,
			Interval:         envcfg.GetEnvDuration("NEWS_CB_INTERVAL", 30*time.Second),
			Timeout:          envcfg.GetEnvDuration("NEWS_CB_TIMEOUT", 60*time.Second),
			FailureThreshold: envcfg.GetEnvFloat("NEWS_CB_FAILURE_THRESHOLD", 0.6),
			MinRequests:      cbMinRequests,
		},
	}

	if path := envcfg.GetEnvString("NEWS_PROMPT_CONFIG", ""); path != "" {
		file, err := LoadPromptFile(path)
		if err != nil {
			return nil, err
		}
		file.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid news configuration: %w", err)
	}

	return cfg, nil
}

// getEnvCount reads a non-negative counter that must fit in uint32.
func getEnvCount(key string, defaultValue uint32) (uint32, error) {
	v := envcfg.GetEnvInt(key, int(defaultValue))
	if v < 0 || int64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("invalid news configuration: %s must be between 0 and %d, got %d", key, uint32(math.MaxUint32), v)
	}
	return uint32(v), nil
}

// APIKey returns the credential for the configured mode.
func (c *NewsConfig) APIKey() string {
	if c.Mode == ModeClaude {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// Validate checks configuration correctness.
// A missing API key is a startup fault, never a per-request error.
func (c *NewsConfig) Validate() error {
	keyVar, ok := apiKeyVars[c.Mode]
	if !ok {
		return fmt.Errorf("NEWS_PROVIDER_MODE must be one of chat, websearch, claude, got %q", c.Mode)
	}
	if c.APIKey() == "" {
		return fmt.Errorf("%s must be set for provider mode %q", keyVar, c.Mode)
	}

	if c.Model == "" {
		return fmt.Errorf("NEWS_MODEL cannot be empty")
	}

	// Anthropic の上限は 1.0
	maxTemperature := 2.0
	if c.Mode == ModeClaude {
		maxTemperature = 1.0
	}
	if c.Temperature < 0 || c.Temperature > maxTemperature {
		return fmt.Errorf("NEWS_TEMPERATURE must be between 0 and %v for provider mode %q, got %v", maxTemperature, c.Mode, c.Temperature)
	}

	if c.MaxTokens < 64 || c.MaxTokens > 16384 {
		return fmt.Errorf("NEWS_MAX_TOKENS must be between 64 and 16384, got %d", c.MaxTokens)
	}

	if err := envcfg.ValidateDurationRange(c.Timeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("NEWS_PROVIDER_TIMEOUT: %w", err)
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("NEWS_CB_MAX_REQUESTS must be positive")
	}

	if err := envcfg.ValidatePositiveDuration(c.CircuitBreaker.Interval); err != nil {
		return fmt.Errorf("NEWS_CB_INTERVAL: %w", err)
	}

	if err := envcfg.ValidatePositiveDuration(c.CircuitBreaker.Timeout); err != nil {
		return fmt.Errorf("NEWS_CB_TIMEOUT: %w", err)
	}

	if c.CircuitBreaker.FailureThreshold <= 0 || c.CircuitBreaker.FailureThreshold > 1 {
		return fmt.Errorf("NEWS_CB_FAILURE_THRESHOLD must be in (0, 1], got %v", c.CircuitBreaker.FailureThreshold)
	}

	return nil
}
