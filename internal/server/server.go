package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/developers-api/internal/config"
	"github.com/hongminglow/developers-api/internal/http/handlers"
	"github.com/hongminglow/developers-api/internal/http/respond"
	"github.com/hongminglow/developers-api/internal/metrics"
	"github.com/hongminglow/developers-api/internal/middleware"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, svc handlers.DeveloperService, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := metrics.New()

	router := mux.NewRouter()
	// mux skips Use middlewares for unmatched requests, so these are instrumented directly
	router.NotFoundHandler = m.Middleware(http.HandlerFunc(notFound))
	router.MethodNotAllowedHandler = m.Middleware(http.HandlerFunc(methodNotAllowed))
	router.Use(m.Middleware)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	health := handlers.NewHealthHandler(time.Now(), cfg.StoreDriver)
	health.Register(router)

	developers := handlers.NewDeveloperHandler(svc, log)
	developers.Register(router)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, middleware.Recovery(log, router)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, respond.CodeInvalidRequest, "no route for "+r.Method+" "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusMethodNotAllowed, respond.CodeInvalidRequest, "method "+r.Method+" not allowed")
}
