package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/budge42/novanews/internal/config"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	webSearchTool        = "web_search_preview"

	// maxResponseBytes bounds how much of a Responses API reply is read.
	maxResponseBytes = 4 << 20
)

// OpenAIResponses calls the OpenAI Responses API with the web search tool forced on.
// It serves both the websearch news shape and the search passthrough.
type OpenAIResponses struct {
	guard
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	location   config.LocationConfig
	prompts    Prompts
}

type responsesRequest struct {
	Model           string          `json:"model"`
	Input           string          `json:"input"`
	Tools           []webSearchSpec `json:"tools"`
	ToolChoice      toolChoice      `json:"tool_choice"`
	MaxOutputTokens int             `json:"max_output_tokens,omitempty"`
}

type webSearchSpec struct {
	Type         string        `json:"type"`
	UserLocation *userLocation `json:"user_location,omitempty"`
}

type userLocation struct {
	Type    string `json:"type"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
}

type toolChoice struct {
	Type string `json:"type"`
}

// NewOpenAIResponses creates the web-search news adapter.
func NewOpenAIResponses(cfg *config.NewsConfig, rec MetricsRecorder) *OpenAIResponses {
	return newResponses("openai-websearch", cfg.Model, cfg, rec)
}

// NewSearcher creates the search passthrough client. It needs OPENAI_API_KEY
// whatever the provider mode.
func NewSearcher(cfg *config.NewsConfig, rec MetricsRecorder) (*OpenAIResponses, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("search requires OPENAI_API_KEY")
	}
	return newResponses("openai-search", cfg.SearchModel, cfg, rec), nil
}

func newResponses(name, model string, cfg *config.NewsConfig, rec MetricsRecorder) *OpenAIResponses {
	baseURL := cfg.OpenAIBaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &OpenAIResponses{
		guard:      newGuard(name, cfg.Timeout, cfg.CircuitBreaker, rec),
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.OpenAIAPIKey,
		model:      model,
		maxTokens:  cfg.MaxTokens,
		location:   cfg.Location,
		prompts:    NewPrompts(cfg.Prompts),
	}
}

// FetchRawNews implements Provider.
func (r *OpenAIResponses) FetchRawNews(ctx context.Context, topic string, offset int) (string, error) {
	return r.run(ctx, "fetch_raw_news", func(ctx context.Context) (string, error) {
		tool := webSearchSpec{Type: webSearchTool}
		if r.location != (config.LocationConfig{}) {
			tool.UserLocation = &userLocation{
				Type:    "approximate",
				Country: r.location.Country,
				City:    r.location.City,
				Region:  r.location.Region,
			}
		}

		body, err := r.post(ctx, responsesRequest{
			Model:           r.model,
			Input:           r.prompts.WebSearchInput(topic, offset),
			Tools:           []webSearchSpec{tool},
			ToolChoice:      toolChoice{Type: webSearchTool},
			MaxOutputTokens: r.maxTokens,
		})
		if err != nil {
			return "", err
		}

		text, ok := OutputText(body)
		if !ok {
			return "", fmt.Errorf("openai responses: %w", ErrEmptyResponse)
		}
		return text, nil
	})
}

// Search implements Searcher. The query is sent verbatim; a reply without
// text yields an empty string rather than an error.
func (r *OpenAIResponses) Search(ctx context.Context, query string) (string, error) {
	return r.run(ctx, "search", func(ctx context.Context) (string, error) {
		body, err := r.post(ctx, responsesRequest{
			Model:      r.model,
			Input:      query,
			Tools:      []webSearchSpec{{Type: webSearchTool}},
			ToolChoice: toolChoice{Type: webSearchTool},
		})
		if err != nil {
			return "", err
		}

		text, _ := OutputText(body)
		return text, nil
	})
}

func (r *OpenAIResponses) post(ctx context.Context, payload responsesRequest) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode responses request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/responses", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build responses request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai responses: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read responses body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openai responses: %w", &StatusError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "error.message").String(),
		})
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("openai responses: invalid JSON envelope")
	}

	return body, nil
}

// OutputText pulls the model text out of a Responses API envelope.
// The top-level output_text field wins when present; otherwise the output_text
// parts of every message item are concatenated in order. ok is false when the
// envelope carries no text at all.
func OutputText(body []byte) (text string, ok bool) {
	if v := gjson.GetBytes(body, "output_text"); v.Type == gjson.String {
		return v.String(), true
	}

	var b strings.Builder
	gjson.GetBytes(body, "output").ForEach(func(_, item gjson.Result) bool {
		if item.Get("type").String() != "message" {
			return true
		}
		item.Get("content").ForEach(func(_, part gjson.Result) bool {
			if part.Get("type").String() != "output_text" {
				return true
			}
			if t := part.Get("text"); t.Type == gjson.String {
				b.WriteString(t.String())
				ok = true
			}
			return true
		})
		return true
	})

	return b.String(), ok
}
