// Package diagnostics exposes a `big-bang` run's health and prometheus
// metrics over HTTP, grounded on the game server's chi+cors router
// (cmd/game-server/main.go): request-id/recoverer middleware, a CORS
// layer, and a `/metrics` + `/healthz` pair.
package diagnostics

import (
	"context"
	"net/http"
	"time"

	"cosmopoeia/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status reports the currently running (or last completed) stage, for
// the `/healthz` response.
type Status struct {
	Stage     string
	Completed []string
	Err       string
}

// Server is the big-bang diagnostics HTTP server (spec §9:
// `--diagnostics-addr`).
type Server struct {
	http   *http.Server
	status func() Status
}

// New builds a diagnostics server bound to addr. statusFn is polled on
// every `/healthz` request; m's collectors are registered against a
// private registry so big-bang runs never collide with a shared
// default registry.
func New(addr string, m *metrics.Metrics, statusFn func() Status) *Server {
	reg := prometheus.NewRegistry()
	m.Register(reg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeHealthz(w, statusFn())
	})

	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		status: statusFn,
	}
}

func writeHealthz(w http.ResponseWriter, s Status) {
	w.Header().Set("Content-Type", "application/json")
	if s.Err != "" {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"stage":"` + s.Stage + `","error":"` + s.Err + `"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"stage":"` + s.Stage + `"}`))
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
