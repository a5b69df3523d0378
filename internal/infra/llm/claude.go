package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/budge42/novanews/internal/config"
)

// Claude implements Provider with Anthropic's Messages API, using the same
// system and user prompts as the chat shape.
type Claude struct {
	guard
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
	prompts     Prompts
}

// NewClaude creates the Anthropic adapter. SDK retries are disabled.
func NewClaude(cfg *config.NewsConfig, rec MetricsRecorder) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}

	return &Claude{
		guard:       newGuard("claude", cfg.Timeout, cfg.CircuitBreaker, rec),
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		prompts:     NewPrompts(cfg.Prompts),
	}
}

// FetchRawNews implements Provider.
func (c *Claude) FetchRawNews(ctx context.Context, topic string, offset int) (string, error) {
	return c.run(ctx, "fetch_raw_news", func(ctx context.Context) (string, error) {
		return c.complete(ctx, topic, offset)
	})
}

func (c *Claude) complete(ctx context.Context, topic string, offset int) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: c.prompts.System()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(c.prompts.User(topic, offset)),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			return textBlock.Text, nil
		}
	}

	return "", fmt.Errorf("claude messages: %w", ErrEmptyResponse)
}
