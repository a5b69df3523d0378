package llm

import (
	"fmt"

	"github.com/budge42/novanews/internal/config"
)

// New builds the provider selected by cfg.Mode. The provider is created once
// at startup and shared by all requests.
func New(cfg *config.NewsConfig, rec MetricsRecorder) (Provider, error) {
	switch cfg.Mode {
	case config.ModeChat:
		return NewOpenAIChat(cfg, rec), nil
	case config.ModeWebSearch:
		return NewOpenAIResponses(cfg, rec), nil
	case config.ModeClaude:
		return NewClaude(cfg, rec), nil
	default:
		return nil, fmt.Errorf("unsupported provider mode %q", cfg.Mode)
	}
}
