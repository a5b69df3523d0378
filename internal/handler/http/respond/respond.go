// Package respond writes JSON responses and keeps secrets out of error logs.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/budge42/novanews/internal/observability/logging"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダー送信済みなのでログのみ
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// ServerError logs err through the request logger after masking secrets, then
// writes body. The caller decides what the client sees; err never reaches it.
func ServerError(w http.ResponseWriter, r *http.Request, code int, body any, err error) {
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.Int("code", code),
			slog.String("path", r.URL.Path),
			slog.String("error", SanitizeError(err)))
	}
	JSON(w, code, body)
}

// MethodNotAllowed writes a 405 with an Allow header listing allowed.
func MethodNotAllowed(w http.ResponseWriter, allowed, msg string) {
	w.Header().Set("Allow", allowed)
	Error(w, http.StatusMethodNotAllowed, msg)
}
