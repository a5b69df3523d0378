// Package main provides a CLI that fetches news for one or more topics.
// Usage: news [--page N] [--output text|json] [--concurrency N] [--rps R] "topic" ["topic"...]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/budge42/novanews/internal/config"
	"github.com/budge42/novanews/internal/domain/entity"
	"github.com/budge42/novanews/internal/handler/http/respond"
	"github.com/budge42/novanews/internal/infra/llm"
	"github.com/budge42/novanews/internal/observability/logging"
	newsUC "github.com/budge42/novanews/internal/usecase/news"
)

// TopicOutput is the JSON output for one topic.
type TopicOutput struct {
	Topic    string          `json:"topic"`
	Page     int             `json:"page"`
	Fallback bool            `json:"fallback"`
	Error    string          `json:"error,omitempty"`
	Items    entity.NewsList `json:"items"`
}

type fetcher interface {
	Fetch(ctx context.Context, req newsUC.TopicRequest) (newsUC.Result, error)
}

type options struct {
	page        int
	output      string
	concurrency int
	rps         float64
}

func main() {
	var opts options
	flag.IntVar(&opts.page, "page", 1, "Page of results to request (1-based)")
	flag.StringVar(&opts.output, "output", "text", "Output format: text or json")
	flag.IntVar(&opts.concurrency, "concurrency", 2, "Maximum topics fetched at once")
	flag.Float64Var(&opts.rps, "rps", 1, "Maximum provider calls per second (0 = unlimited)")
	flag.Parse()

	topics := flag.Args()
	if len(topics) == 0 || (opts.output != "text" && opts.output != "json") {
		usage(os.Stderr)
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	// 標準出力は結果専用、ログは標準エラーへ
	logger := logging.New(os.Stderr, os.Getenv("LOG_FORMAT"), logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(logger)

	cfg, err := config.LoadNewsConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	provider, err := llm.New(cfg, llm.NewPrometheusMetrics())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	svc := newsUC.NewService(provider, entity.NewsValidator{StrictDate: cfg.StrictDate})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := fetchAll(ctx, svc, topics, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := render(os.Stdout, opts.output, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}

// binaryName matches what `go build ./cmd/news` produces.
const binaryName = "news"

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [--page N] [--output text|json] [--concurrency N] [--rps R] \"topic\" [\"topic\"...]\n", binaryName)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s \"renewable energy\"\n", binaryName)
	fmt.Fprintf(w, "  %s --page 2 \"space exploration\"\n", binaryName)
	fmt.Fprintf(w, "  %s --output json --concurrency 4 \"ai\" \"climate\" \"rugby\"\n", binaryName)
}

// fetchAll runs the news pipeline for every topic, keeping input order in the
// result. Provider errors are reported per topic and do not stop the batch;
// only an invalid topic or cancellation does.
func fetchAll(ctx context.Context, svc fetcher, topics []string, opts options) ([]TopicOutput, error) {
	requests := make([]newsUC.TopicRequest, len(topics))
	for i, topic := range topics {
		req, err := newsUC.NewTopicRequest(topic, opts.page)
		if err != nil {
			return nil, fmt.Errorf("topic %d (%q): %w", i+1, topic, err)
		}
		requests[i] = req
	}

	limit := rate.Inf
	if opts.rps > 0 {
		limit = rate.Limit(opts.rps)
	}
	limiter := rate.NewLimiter(limit, 1)

	concurrency := opts.concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]TopicOutput, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range requests {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			res, err := svc.Fetch(gctx, req)
			out := TopicOutput{
				Topic:    req.Topic,
				Page:     req.Page,
				Fallback: res.Fallback,
				Items:    res.Items,
			}
			if err != nil {
				out.Error = respond.SanitizeError(err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func render(w io.Writer, format string, results []TopicOutput) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "== %s (page %d)\n", r.Topic, r.Page); err != nil {
			return err
		}
		if r.Error != "" {
			fmt.Fprintf(w, "   provider error: %s\n", r.Error)
		}
		if r.Fallback {
			fmt.Fprintln(w, "   (fallback list)")
		}
		for i, item := range r.Items {
			fmt.Fprintf(w, "%d. %s\n", i+1, item.Title)
			fmt.Fprintf(w, "   %s | %s\n", item.Source, item.Date)
			fmt.Fprintf(w, "   %s\n", item.Summary)
		}
		fmt.Fprintln(w)
	}
	return nil
}
