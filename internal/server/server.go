// Package server exposes the signaling hub over HTTP: the websocket
// endpoint, read-only JSON endpoints and Prometheus metrics.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BioHazard786/huddle/internal/signaling"
)

var ErrServerClosed = http.ErrServerClosed

// Options configure the HTTP surface.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Client         signaling.ClientOptions
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

type Server struct {
	log     *slog.Logger
	hub     *signaling.Hub
	sampler signaling.MemorySampler
	origins *OriginPolicy
	opts    Options
	started time.Time
	now     func() time.Time

	mux *http.ServeMux
	srv *http.Server
}

func New(hub *signaling.Hub, sampler signaling.MemorySampler, log *slog.Logger, opts Options) *Server {
	s := &Server{
		log:     log,
		hub:     hub,
		sampler: sampler,
		origins: NewOriginPolicy(opts.AllowedOrigins),
		opts:    opts,
		started: time.Now(),
		now:     time.Now,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()

	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler is the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoverMiddleware(s.log),
		corsMiddleware(s.origins),
	)
}

func (s *Server) Serve(l net.Listener) error {
	s.log.Info("HTTP server listening", "addr", l.Addr().String())
	return s.srv.Serve(l)
}

// Shutdown stops accepting requests and waits for in-flight ones. Hijacked
// websocket connections are not tracked here; the hub closes those.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/rooms/{roomId}/info", s.handleRoomInfo)
	s.mux.HandleFunc("GET /api/server/stats", s.handleStats)
	s.mux.HandleFunc("GET /ws", s.ServeWs)
	if s.opts.Gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

type middleware func(http.Handler) http.Handler

func chain(handler http.Handler, middlewares ...middleware) http.Handler {
	h := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func recoverMiddleware(log *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic in HTTP handler", "path", r.URL.Path, "recover", rec, "stack", string(debug.Stack()))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
