package news

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/budge42/novanews/internal/handler/http/respond"
	"github.com/budge42/novanews/internal/observability/logging"
	newsUC "github.com/budge42/novanews/internal/usecase/news"
)

// MsgBodyTooLarge is returned when the request body exceeds the server limit.
const MsgBodyTooLarge = "Request body too large."

// Fetcher runs the news pipeline for one request.
type Fetcher interface {
	Fetch(ctx context.Context, req newsUC.TopicRequest) (newsUC.Result, error)
}

// NewsHandler serves POST /api/news.
type NewsHandler struct{ Svc Fetcher }

// ServeHTTP ニュース取得
// @Summary      Fetch news for a topic
// @Description  Asks the configured LLM provider for up to five recent stories about the topic.
// @Description  Unusable provider output is replaced by a fixed two-item fallback list.
// @Description  Each item is projected onto title, summary, source and date; any other fields the provider adds are dropped.
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        request body NewsRequest true "Topic and optional page"
// @Success      200 {array}  entity.NewsItem
// @Failure      400 {object} respond.ErrorBody
// @Failure      405 {object} respond.ErrorBody
// @Failure      413 {object} respond.ErrorBody
// @Failure      500 {object} ProviderFailureResponse
// @Router       /api/news [post]
func (h NewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.MethodNotAllowed(w, http.MethodPost, newsUC.MsgMethodNotAllowed)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	req, err := newsUC.ParseTopicRequest(body)
	if err != nil {
		writeClientError(w, err)
		return
	}

	res, err := h.Svc.Fetch(r.Context(), req)
	if r.Context().Err() != nil {
		// 切断済みのクライアントには何も返さない
		logging.FromContext(r.Context()).Info("client went away, discarding news result",
			slog.String("topic", req.Topic))
		return
	}
	if err != nil {
		respond.ServerError(w, r, http.StatusInternalServerError, ProviderFailureResponse{
			Error:    newsUC.MsgProviderFailure,
			Fallback: res.Items,
		}, err)
		return
	}

	respond.JSON(w, http.StatusOK, res.Items)
}

// readBody reads the whole request body. On failure it writes the response
// and returns false.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(r.Body)
	if err == nil {
		return body, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Error(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		return nil, false
	}
	if r.Context().Err() != nil {
		return nil, false
	}
	writeClientError(w, newsUC.ErrInvalidTopic)
	return nil, false
}

func writeClientError(w http.ResponseWriter, err error) {
	var ce *newsUC.ClientError
	if errors.As(err, &ce) {
		respond.Error(w, ce.Status, ce.Message)
		return
	}
	respond.Error(w, http.StatusBadRequest, err.Error())
}
