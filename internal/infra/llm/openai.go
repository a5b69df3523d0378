package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/budge42/novanews/internal/config"
)

// OpenAIChat implements Provider with a two-message chat completion.
type OpenAIChat struct {
	guard
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	prompts     Prompts
}

// NewOpenAIChat creates the chat-completion adapter.
func NewOpenAIChat(cfg *config.NewsConfig, rec MetricsRecorder) *OpenAIChat {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAIChat{
		guard:       newGuard("openai-chat", cfg.Timeout, cfg.CircuitBreaker, rec),
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		prompts:     NewPrompts(cfg.Prompts),
	}
}

// FetchRawNews implements Provider.
func (o *OpenAIChat) FetchRawNews(ctx context.Context, topic string, offset int) (string, error) {
	return o.run(ctx, "fetch_raw_news", func(ctx context.Context) (string, error) {
		return o.complete(ctx, topic, offset)
	})
}

func (o *OpenAIChat) complete(ctx context.Context, topic string, offset int) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.prompts.System()},
			{Role: openai.ChatMessageRoleUser, Content: o.prompts.User(topic, offset)},
		},
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	// レスポンス構造の検証（配列アクセスでの panic を防ぐ）
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: %w", ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
