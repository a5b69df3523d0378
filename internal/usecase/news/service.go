package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/budge42/novanews/internal/domain/entity"
	"github.com/budge42/novanews/internal/observability/logging"
	"github.com/budge42/novanews/internal/observability/metrics"
	"github.com/budge42/novanews/internal/utils/jsonarray"
	"github.com/budge42/novanews/internal/utils/text"
)

// maxLoggedRawRunes bounds how much provider text a shape warning carries.
const maxLoggedRawRunes = 2048

// RawNewsFetcher is the provider contract the service depends on.
type RawNewsFetcher interface {
	FetchRawNews(ctx context.Context, topic string, offset int) (string, error)
}

// Result is the outcome of one fetch. Items is always renderable: either the
// validated provider list or the fallback list.
type Result struct {
	Items entity.NewsList
	// Fallback is true when Items is the fallback list.
	Fallback bool
	// ShapeErr wraps ErrShape when the provider answered with unusable output.
	ShapeErr error
}

// Service orchestrates provider, extractor, validator and fallback.
type Service struct {
	Provider  RawNewsFetcher
	Validator entity.NewsValidator
	// Now is the clock used for fallback dates. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a Service using the wall clock.
func NewService(provider RawNewsFetcher, validator entity.NewsValidator) *Service {
	return &Service{Provider: provider, Validator: validator, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Fetch runs the pipeline for one request.
//
// A provider failure returns the fallback list in Result together with a
// non-nil error wrapping the provider error. Malformed provider output is not
// an error: Result holds the fallback list and ShapeErr explains why.
func (s *Service) Fetch(ctx context.Context, req TopicRequest) (Result, error) {
	logger := logging.FromContext(ctx)

	raw, err := s.Provider.FetchRawNews(ctx, req.Topic, req.Offset())
	if err != nil {
		if ctx.Err() == nil {
			metrics.RecordNewsRequest(metrics.OutcomeFallbackProvider)
		}
		return Result{Items: Fallback(s.now()), Fallback: true}, fmt.Errorf("fetch raw news: %w", err)
	}

	if len(raw) > jsonarray.MaxInputBytes {
		logger.WarnContext(ctx, "provider output exceeds extractor scan limit, tail ignored",
			slog.String("topic", req.Topic),
			slog.Int("bytes", len(raw)),
			slog.Int("limit", jsonarray.MaxInputBytes))
	}

	items, shapeErr := s.parse(raw)
	if shapeErr != nil {
		logger.WarnContext(ctx, "provider output rejected, serving fallback",
			slog.String("topic", req.Topic),
			slog.Int("page", req.Page),
			slog.String("reason", shapeErr.Error()),
			slog.String("raw", text.Truncate(raw, maxLoggedRawRunes)))
		metrics.RecordNewsRequest(metrics.OutcomeFallbackShape)
		return Result{Items: Fallback(s.now()), Fallback: true, ShapeErr: shapeErr}, nil
	}

	logger.InfoContext(ctx, "news fetched",
		slog.String("topic", req.Topic),
		slog.Int("page", req.Page),
		slog.Int("items", len(items)),
		slog.Any("titles", items.Titles()))
	metrics.RecordNewsRequest(metrics.OutcomeOK)
	metrics.RecordItemsReturned(len(items))

	return Result{Items: items}, nil
}

// parse recovers and validates a news list from raw provider text.
func (s *Service) parse(raw string) (entity.NewsList, error) {
	candidate, ok := jsonarray.Extract(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array of objects found", ErrShape)
	}

	var decoded any
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrShape, err)
	}

	items, err := s.Validator.Validate(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}

	return items, nil
}
