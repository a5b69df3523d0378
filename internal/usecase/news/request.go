package news

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/budge42/novanews/internal/common/pagination"
	"github.com/budge42/novanews/internal/domain/entity"
	"github.com/budge42/novanews/internal/utils/text"
)

// MaxTopicRunes caps the topic length accepted from callers.
const MaxTopicRunes = 500

// TopicRequest is a validated request for one page of news.
type TopicRequest struct {
	Topic string
	Page  int
}

// Offset is the number of stories the provider is asked to skip.
func (r TopicRequest) Offset() int {
	return pagination.CalculateOffset(r.Page, entity.TargetNewsCount)
}

// NewTopicRequest validates topic and normalizes page. Pages below 1 become 1.
func NewTopicRequest(topic string, page int) (TopicRequest, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" || text.CountRunes(topic) > MaxTopicRunes {
		return TopicRequest{}, ErrInvalidTopic
	}
	if page < 1 {
		page = pagination.DefaultPage
	}
	return TopicRequest{Topic: topic, Page: page}, nil
}

// ParseTopicRequest decodes a request body of the form {"topic": "...", "page": n}.
// An empty body is treated as {}. Anything that is not a JSON object with a
// non-empty string topic yields ErrInvalidTopic; an unusable page means page 1.
func ParseTopicRequest(body []byte) (TopicRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return TopicRequest{}, ErrInvalidTopic
	}

	topic, ok := raw["topic"].(string)
	if !ok {
		return TopicRequest{}, ErrInvalidTopic
	}

	return NewTopicRequest(topic, pagination.CoercePage(raw["page"]))
}
