package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"github.com/budge42/novanews/internal/config"
	"github.com/budge42/novanews/internal/domain/entity"
	hhttp "github.com/budge42/novanews/internal/handler/http"
	hnews "github.com/budge42/novanews/internal/handler/http/news"
	"github.com/budge42/novanews/internal/handler/http/requestid"
	"github.com/budge42/novanews/internal/infra/llm"
	"github.com/budge42/novanews/internal/observability/logging"
	"github.com/budge42/novanews/internal/observability/tracing"
	newsUC "github.com/budge42/novanews/internal/usecase/news"
	envcfg "github.com/budge42/novanews/pkg/config"

	_ "github.com/budge42/novanews/docs" // swagger docs
)

// @title           NovaNews API
// @version         1.0
// @description     Topic news summaries from an LLM provider, with a fixed fallback
// @description     list whenever the provider output cannot be trusted.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

const shutdownTimeout = 10 * time.Second

func main() {
	loadDotEnv()
	logger := initLogger()

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// loadDotEnv reads .env when present. Real environment variables win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewFromEnv()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return envcfg.GetEnvString("VERSION", "dev")
}

func run(logger *slog.Logger) error {
	shutdownTracing := tracing.InitProvider()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	// APIキー未設定は起動時エラー
	cfg, err := config.LoadNewsConfig()
	if err != nil {
		return err
	}

	metricsRec := llm.NewPrometheusMetrics()
	provider, err := llm.New(cfg, metricsRec)
	if err != nil {
		return err
	}

	svc := newsUC.NewService(provider, entity.NewsValidator{StrictDate: cfg.StrictDate})
	searcher := initSearcher(logger, cfg, metricsRec)
	version := getVersion()

	logger.Info("news provider configured",
		slog.String("mode", string(cfg.Mode)),
		slog.String("provider", provider.Name()),
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout),
		slog.Bool("strict_date", cfg.StrictDate),
		slog.Bool("search_enabled", searcher != nil))

	mux := setupRoutes(cfg, version, provider, svc, searcher)
	handler := applyMiddleware(logger, mux)

	addr := envcfg.GetEnvString("HTTP_ADDR", ":8080")
	return runServer(logger, addr, handler, version)
}

// initSearcher returns nil when the search route cannot be served.
func initSearcher(logger *slog.Logger, cfg *config.NewsConfig, rec llm.MetricsRecorder) llm.Searcher {
	searcher, err := llm.NewSearcher(cfg, rec)
	if err != nil {
		logger.Warn("search endpoint disabled", slog.Any("error", err))
		return nil
	}
	return searcher
}

// setupRoutes registers the API, probe, metrics and docs routes.
func setupRoutes(cfg *config.NewsConfig, version string, provider llm.Provider, svc *newsUC.Service, searcher llm.Searcher) *http.ServeMux {
	mux := http.NewServeMux()

	hnews.Register(mux, svc, searcher)

	mux.Handle("/health", &hhttp.HealthHandler{
		Version: version,
		Mode:    string(cfg.Mode),
		Model:   cfg.Model,
		Breaker: provider.Breaker(),
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{Breaker: provider.Breaker()})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Body Limit → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(hhttp.DefaultMaxBodyBytes),
		hhttp.MetricsMiddleware,
	)
}

// runServer serves until SIGINT/SIGTERM, then drains in-flight requests.
// Request contexts are not tied to the signal so that provider calls already
// under way can finish during the drain.
func runServer(logger *slog.Logger, addr string, handler http.Handler, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
