package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slugbot/internal/translate"
)

type Deps struct {
	History    HistoryService
	Translator translate.Translator
}

// Server is the read-only admin surface running beside the bot: health,
// metrics, and a paginated view of per-user history.
type Server struct {
	r    chi.Router
	deps Deps
}

func New(deps Deps) *Server {
	r := chi.NewRouter()
	s := &Server{r: r, deps: deps}

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/sessions/{userID}/history", s.handleListHistory)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.Translator != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.deps.Translator.CheckHealth(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "error": "translator unreachable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
