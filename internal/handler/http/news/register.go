package news

import (
	"net/http"

	"github.com/budge42/novanews/internal/infra/llm"
)

// Register mounts the news routes on mux. The search route is skipped when
// searcher is nil.
//
// Patterns carry no method so the handlers can answer wrong methods with the
// JSON 405 body clients expect.
func Register(mux *http.ServeMux, svc Fetcher, searcher llm.Searcher) {
	mux.Handle("/api/news", NewsHandler{Svc: svc})
	if searcher != nil {
		mux.Handle("/api/search", SearchHandler{Searcher: searcher})
	}
}
