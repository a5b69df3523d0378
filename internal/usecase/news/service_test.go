package news_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budge42/novanews/internal/domain/entity"
	"github.com/budge42/novanews/internal/infra/llm"
	"github.com/budge42/novanews/internal/observability/logging"
	"github.com/budge42/novanews/internal/observability/metrics"
	"github.com/budge42/novanews/internal/usecase/news"
	"github.com/budge42/novanews/internal/utils/jsonarray"
)

/* ───────── スタブ実装 ───────── */

type stubProvider struct {
	raw string
	err error

	gotTopic  string
	gotOffset int
	calls     int
}

func (s *stubProvider) FetchRawNews(_ context.Context, topic string, offset int) (string, error) {
	s.calls++
	s.gotTopic = topic
	s.gotOffset = offset
	return s.raw, s.err
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)

func newService(p news.RawNewsFetcher) *news.Service {
	svc := news.NewService(p, entity.NewsValidator{})
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func mustRequest(t *testing.T, topic string, page int) news.TopicRequest {
	t.Helper()
	req, err := news.NewTopicRequest(topic, page)
	require.NoError(t, err)
	return req
}

const seedItem = `{"title":"t","summary":"s","source":"x","date":"2024-05-01"}`

var seedList = entity.NewsList{{Title: "t", Summary: "s", Source: "x", Date: "2024-05-01"}}

func TestService_Fetch_Seeds(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		want         entity.NewsList
		wantFallback bool
	}{
		{
			name: "A: clean array",
			raw:  "[" + seedItem + "]",
			want: seedList,
		},
		{
			name: "B: fenced array with preamble",
			raw:  "Sure! ```json\n[" + seedItem + "]\n``` ",
			want: seedList,
		},
		{
			name:         "C: refusal",
			raw:          "I cannot comply.",
			want:         news.Fallback(fixedNow),
			wantFallback: true,
		},
		{
			name:         "D: non-string summary",
			raw:          `[{"title":"t","summary":42,"source":"x","date":"2024-05-01"}]`,
			want:         news.Fallback(fixedNow),
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&stubProvider{raw: tt.raw})

			res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

			require.NoError(t, err)
			assert.Equal(t, tt.wantFallback, res.Fallback)
			if diff := cmp.Diff(tt.want, res.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
			if tt.wantFallback {
				assert.ErrorIs(t, res.ShapeErr, news.ErrShape)
			} else {
				assert.NoError(t, res.ShapeErr)
			}
		})
	}
}

func TestService_Fetch_G_ProviderError(t *testing.T) {
	providerErr := &llm.ProviderError{Provider: "openai-chat", Err: errors.New("connection refused")}
	svc := newService(&stubProvider{err: providerErr})

	res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrProvider)
	assert.True(t, res.Fallback)
	assert.Equal(t, news.Fallback(fixedNow), res.Items)
}

func TestService_Fetch_PreservesOrderAndCount(t *testing.T) {
	list := make(entity.NewsList, 0, entity.TargetNewsCount)
	for i := 0; i < entity.TargetNewsCount; i++ {
		list = append(list, entity.NewsItem{
			Title:   fmt.Sprintf("title %d", i),
			Summary: fmt.Sprintf("summary %d", i),
			Source:  "Reuters",
			Date:    fmt.Sprintf("2024-05-0%d", i+1),
		})
	}
	raw, err := json.Marshal(list)
	require.NoError(t, err)

	wrappers := map[string]string{
		"bare":           "%s",
		"prose":          "Here are today's stories:\n%s\nLet me know if you want more.",
		"fence":          "```json\n%s\n```",
		"unlabeled":      "```\n%s\n```",
		"prose + fence":  "Sure!\n```json\n%s\n```\nSources verified.",
		"citation noise": "[1] Reuters\n%s",
	}

	for name, wrapper := range wrappers {
		t.Run(name, func(t *testing.T) {
			svc := newService(&stubProvider{raw: fmt.Sprintf(wrapper, raw)})

			res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

			require.NoError(t, err)
			assert.False(t, res.Fallback)
			if diff := cmp.Diff(list, res.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_Fetch_ShapeFailures(t *testing.T) {
	tests := map[string]string{
		"empty reply":      "",
		"no brackets":      "No news today.",
		"array of scalars": `[1, 2, 3]`,
		"empty array":      `[]`,
		"object not array": seedItem,
		"one invalid item": "[" + seedItem + `,{"title":"t2","summary":"s2","source":"x"}]`,
		"null field":       `[{"title":null,"summary":"s","source":"x","date":"2024-05-01"}]`,
		"empty field":      `[{"title":"","summary":"s","source":"x","date":"2024-05-01"}]`,
		"mixed array":      "[" + seedItem + `, "stray"]`,
		"truncated reply":  `[{"title":"t","summary":"s","source":"x","date":"2024-05-01"`,
		"numeric date":     `[{"title":"t","summary":"s","source":"x","date":20240501}]`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			svc := newService(&stubProvider{raw: raw})

			res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

			require.NoError(t, err)
			assert.True(t, res.Fallback)
			assert.ErrorIs(t, res.ShapeErr, news.ErrShape)
			if diff := cmp.Diff(news.Fallback(fixedNow), res.Items); diff != "" {
				t.Errorf("expected fallback (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_Fetch_ValidationErrorInShapeChain(t *testing.T) {
	svc := newService(&stubProvider{raw: `[{"title":"t","summary":42,"source":"x","date":"2024-05-01"}]`})

	res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

	require.NoError(t, err)
	var vErr *entity.ValidationError
	require.True(t, errors.As(res.ShapeErr, &vErr))
	assert.Equal(t, "summary", vErr.Field)
	assert.ErrorIs(t, res.ShapeErr, entity.ErrValidationFailed)
}

func TestService_Fetch_DropsExtraFields(t *testing.T) {
	svc := newService(&stubProvider{raw: `[{"title":"t","summary":"s","source":"x","date":"2024-05-01","url":"https://example.com"}]`})

	res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

	require.NoError(t, err)
	out, err := json.Marshal(res.Items)
	require.NoError(t, err)
	assert.JSONEq(t, "["+seedItem+"]", string(out))
}

func TestService_Fetch_KeepsDuplicates(t *testing.T) {
	svc := newService(&stubProvider{raw: "[" + seedItem + "," + seedItem + "]"})

	res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, []string{"t", "t"}, res.Items.Titles())
}

func TestService_Fetch_StrictDate(t *testing.T) {
	raw := `[{"title":"t","summary":"s","source":"x","date":"May 1, 2024"}]`

	lenient := newService(&stubProvider{raw: raw})
	res, err := lenient.Fetch(context.Background(), mustRequest(t, "ai", 1))
	require.NoError(t, err)
	assert.False(t, res.Fallback)

	strict := newService(&stubProvider{raw: raw})
	strict.Validator = entity.NewsValidator{StrictDate: true}
	res, err = strict.Fetch(context.Background(), mustRequest(t, "ai", 1))
	require.NoError(t, err)
	assert.True(t, res.Fallback)
}

func TestService_Fetch_PassesTopicAndOffset(t *testing.T) {
	tests := []struct {
		page       int
		wantOffset int
	}{
		{page: 1, wantOffset: 0},
		{page: 2, wantOffset: 5},
		{page: 3, wantOffset: 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			stub := &stubProvider{raw: "[" + seedItem + "]"}
			svc := newService(stub)

			_, err := svc.Fetch(context.Background(), mustRequest(t, "  space  ", tt.page))

			require.NoError(t, err)
			assert.Equal(t, 1, stub.calls)
			assert.Equal(t, "space", stub.gotTopic)
			assert.Equal(t, tt.wantOffset, stub.gotOffset)
		})
	}
}

func TestService_Fetch_CanceledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newService(&stubProvider{err: &llm.ProviderError{Provider: "openai-chat", Err: ctx.Err()}})

	_, err := svc.Fetch(ctx, mustRequest(t, "ai", 1))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Fetch_RecordsOutcomes(t *testing.T) {
	counter := func(outcome string) float64 {
		return testutil.ToFloat64(metrics.NewsRequestsTotal.WithLabelValues(outcome))
	}

	ok, shape, provider := counter(metrics.OutcomeOK), counter(metrics.OutcomeFallbackShape), counter(metrics.OutcomeFallbackProvider)

	_, _ = newService(&stubProvider{raw: "[" + seedItem + "]"}).Fetch(context.Background(), mustRequest(t, "ai", 1))
	_, _ = newService(&stubProvider{raw: "nope"}).Fetch(context.Background(), mustRequest(t, "ai", 1))
	_, _ = newService(&stubProvider{err: errors.New("down")}).Fetch(context.Background(), mustRequest(t, "ai", 1))

	assert.Equal(t, ok+1, counter(metrics.OutcomeOK))
	assert.Equal(t, shape+1, counter(metrics.OutcomeFallbackShape))
	assert.Equal(t, provider+1, counter(metrics.OutcomeFallbackProvider))
}

func TestService_NilClockUsesWallTime(t *testing.T) {
	svc := &news.Service{Provider: &stubProvider{raw: "nope"}}

	res, err := svc.Fetch(context.Background(), mustRequest(t, "ai", 1))

	require.NoError(t, err)
	today := time.Now().Format(entity.DateLayout)
	for _, item := range res.Items {
		assert.True(t, strings.HasPrefix(item.Date, today[:4]), "fallback date %q should be current", item.Date)
	}
}

func captureLogs(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logging.New(&buf, "json", slog.LevelDebug)
	return logging.WithLogger(context.Background(), logger), &buf
}

func TestService_Fetch_LogsAcceptedTitles(t *testing.T) {
	raw := `[{"title":"first","summary":"s","source":"x","date":"2024-05-01"},` +
		`{"title":"second","summary":"s","source":"x","date":"2024-05-01"}]`
	svc := newService(&stubProvider{raw: raw})
	ctx, buf := captureLogs(t)

	_, err := svc.Fetch(ctx, mustRequest(t, "ai", 1))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"msg":"news fetched"`)
	assert.Contains(t, buf.String(), `"titles":["first","second"]`)
}

func TestService_Fetch_WarnsWhenOutputExceedsScanLimit(t *testing.T) {
	oversized := "[" + seedItem + strings.Repeat(","+seedItem, jsonarray.MaxInputBytes/len(seedItem)) + "]"
	require.Greater(t, len(oversized), jsonarray.MaxInputBytes)

	svc := newService(&stubProvider{raw: oversized})
	ctx, buf := captureLogs(t)

	res, err := svc.Fetch(ctx, mustRequest(t, "ai", 1))
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.ShapeErr, news.ErrShape)
	assert.Contains(t, buf.String(), "provider output exceeds extractor scan limit")
	assert.Contains(t, buf.String(), fmt.Sprintf(`"limit":%d`, jsonarray.MaxInputBytes))
}

func TestService_Fetch_NoScanLimitWarningForNormalOutput(t *testing.T) {
	svc := newService(&stubProvider{raw: "[" + seedItem + "]"})
	ctx, buf := captureLogs(t)

	_, err := svc.Fetch(ctx, mustRequest(t, "ai", 1))
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "scan limit")
}
