package llm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budge42/novanews/internal/config"
	"github.com/budge42/novanews/internal/infra/llm"
)

func TestProviderError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("fetch: %w", &llm.ProviderError{Provider: "openai-chat", Err: cause})

	assert.True(t, errors.Is(err, llm.ErrProvider))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "fetch: llm provider openai-chat: connection reset", err.Error())

	assert.False(t, errors.Is(cause, llm.ErrProvider))
	assert.False(t, errors.Is(context.Canceled, llm.ErrProvider))
}

func TestStatusError(t *testing.T) {
	assert.Equal(t, "unexpected status 502", (&llm.StatusError{StatusCode: 502}).Error())
	assert.Equal(t, "unexpected status 400: bad tool",
		(&llm.StatusError{StatusCode: 400, Message: "bad tool"}).Error())
}

func TestNew(t *testing.T) {
	tests := []struct {
		mode     config.ProviderMode
		wantName string
		wantType interface{}
	}{
		{config.ModeChat, "openai-chat", &llm.OpenAIChat{}},
		{config.ModeWebSearch, "openai-websearch", &llm.OpenAIResponses{}},
		{config.ModeClaude, "claude", &llm.Claude{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			provider, err := llm.New(testConfig(tt.mode, ""), newFakeMetrics())

			require.NoError(t, err)
			assert.IsType(t, tt.wantType, provider)
			assert.Equal(t, tt.wantName, provider.Name())
			require.NotNil(t, provider.Breaker())
			assert.Equal(t, tt.wantName, provider.Breaker().Name())
			assert.False(t, provider.Breaker().IsOpen())
		})
	}
}

func TestNew_UnknownMode(t *testing.T) {
	provider, err := llm.New(testConfig("gemini", ""), nil)

	assert.Nil(t, provider)
	assert.ErrorContains(t, err, `unsupported provider mode "gemini"`)
}

func TestNew_NilRecorderUsesPrometheus(t *testing.T) {
	provider, err := llm.New(testConfig(config.ModeChat, ""), nil)

	require.NoError(t, err)
	assert.NotNil(t, provider)
}
