package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/budge42/novanews/internal/handler/http/responsewriter"
	"github.com/budge42/novanews/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// knownRoutes are recorded verbatim as the path label. Anything else is
// collapsed so that scanners cannot blow up label cardinality.
var knownRoutes = map[string]struct{}{
	"/api/news":   {},
	"/api/search": {},
	"/health":     {},
	"/live":       {},
	"/ready":      {},
	"/metrics":    {},
}

// RouteLabel maps a request path to a bounded metrics label.
func RouteLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/"
	}
	return "other"
}

// MetricsMiddleware records request count, latency, sizes and in-flight requests.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		wrapped := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.StatusCode())
		if !wrapped.Written() && r.Context().Err() != nil {
			// nginx の慣習に合わせる
			status = "499"
		}

		reqSize := 0
		if r.ContentLength > 0 {
			reqSize = int(r.ContentLength)
		}
		metrics.RecordHTTPRequest(r.Method, RouteLabel(r.URL.Path), status,
			time.Since(start), reqSize, wrapped.BytesWritten())
	})
}

// MetricsHandler serves the Prometheus exposition endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
