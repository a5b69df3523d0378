package news

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/budge42/novanews/internal/handler/http/respond"
	"github.com/budge42/novanews/internal/infra/llm"
	"github.com/budge42/novanews/internal/observability/logging"
	newsUC "github.com/budge42/novanews/internal/usecase/news"
	"github.com/budge42/novanews/internal/utils/text"
)

const (
	// DefaultSearchQuery is used when the body names no query.
	DefaultSearchQuery = "positive news today"
	// NoSearchResult is returned when the provider answered without text.
	NoSearchResult = "No result returned."
	// MaxQueryRunes caps the query length accepted from callers.
	MaxQueryRunes = 500

	msgSearchFailed = "Search failed"
	msgInvalidQuery = "Invalid search query."
)

// SearchHandler serves POST /api/search, a thin web-search passthrough.
type SearchHandler struct{ Searcher llm.Searcher }

// ServeHTTP Web検索
// @Summary      Free-form web search
// @Description  Sends the query verbatim to the web-search model and returns its text answer.
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request body SearchRequest false "Search query"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} respond.ErrorBody
// @Failure      405 {object} respond.ErrorBody
// @Failure      500 {object} SearchErrorResponse
// @Router       /api/search [post]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.MethodNotAllowed(w, http.MethodPost, newsUC.MsgMethodNotAllowed)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	query, ok := parseSearchQuery(body)
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidQuery)
		return
	}

	result, err := h.Searcher.Search(r.Context(), query)
	if r.Context().Err() != nil {
		logging.FromContext(r.Context()).Info("client went away, discarding search result")
		return
	}
	if err != nil {
		respond.ServerError(w, r, http.StatusInternalServerError, SearchErrorResponse{
			Error:  msgSearchFailed,
			Detail: respond.SanitizeError(err),
		}, err)
		return
	}

	if strings.TrimSpace(result) == "" {
		result = NoSearchResult
	}
	logging.FromContext(r.Context()).Debug("search answered", slog.Int("chars", len(result)))
	respond.JSON(w, http.StatusOK, SearchResponse{Result: result})
}

// parseSearchQuery extracts the query from a body. An empty body, or one
// without query and topic, means DefaultSearchQuery.
func parseSearchQuery(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return DefaultSearchQuery, true
	}

	var req SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", false
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = strings.TrimSpace(req.Topic)
	}
	if query == "" {
		return DefaultSearchQuery, true
	}
	if text.CountRunes(query) > MaxQueryRunes {
		return "", false
	}
	return query, true
}
