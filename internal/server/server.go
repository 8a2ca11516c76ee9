package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/auth"
	"github.com/hongminglow/ubu-lite/internal/config"
	"github.com/hongminglow/ubu-lite/internal/http/handlers"
	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/middleware"
	"github.com/hongminglow/ubu-lite/internal/telemetry"
)

// Server wraps an http.Server serving the mock marketplace API under /api.
type Server struct {
	inner   *http.Server
	handler http.Handler
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.MockConfig, m *market.Market, log logrus.FieldLogger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	metrics := telemetry.NewServerMetrics()
	authn := middleware.RequireAuth(tokens, m.User)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logging(log),
		metrics.Instrument,
		middleware.CORS(cfg.CORSOrigins),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Detail(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respond.Detail(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %q not allowed.", req.Method))
	})

	r.Handle("/metrics", metrics.Handler())
	handlers.NewHealthHandler(time.Now(), m.Stats).Register(r)

	r.Route("/api", func(api chi.Router) {
		handlers.NewAuthHandler(m, tokens, log).Register(api)
		handlers.NewMarketplaceHandler(m).Register(api, authn)
		handlers.NewPaymentHandler(m).Register(api, authn)
		api.Group(func(private chi.Router) {
			private.Use(authn)
			handlers.NewBookingHandler(m).Register(private)
			handlers.NewPortfolioHandler(m).Register(private)
		})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, handler: r}
}

// Handler exposes the routed handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
