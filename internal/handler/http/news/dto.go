// Package news provides the HTTP handlers for the news and search endpoints.
package news

import "github.com/budge42/novanews/internal/domain/entity"

// NewsRequest documents the body of POST /api/news. Page is 1-based; values
// that are not a positive integer (or an integral number or numeric string)
// mean page 1.
type NewsRequest struct {
	Topic string `json:"topic" example:"renewable energy"`
	Page  int    `json:"page,omitempty" example:"1"`
}

// ProviderFailureResponse is the 500 body of POST /api/news. The fallback list
// lets clients render something even when the provider is down.
type ProviderFailureResponse struct {
	Error    string          `json:"error" example:"Failed to fetch news from provider."`
	Fallback entity.NewsList `json:"fallback"`
}

// SearchRequest is the body of POST /api/search. Topic is accepted as an alias.
type SearchRequest struct {
	Query string `json:"query" example:"positive news today"`
	Topic string `json:"topic,omitempty"`
}

// SearchResponse is the 200 body of POST /api/search.
type SearchResponse struct {
	Result string `json:"result" example:"Here are three uplifting stories from this week..."`
}

// SearchErrorResponse is the 500 body of POST /api/search.
type SearchErrorResponse struct {
	Error  string `json:"error" example:"Search failed"`
	Detail string `json:"detail" example:"llm provider openai-search: unexpected status 429"`
}
