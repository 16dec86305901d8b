// Package web provides the HTTP front end for the SQL parser.
//
// EDUCATIONAL NOTES:
// ------------------
// This package sets up an HTTP server using the chi router, which is a
// lightweight, idiomatic Go router. Key concepts:
//
// 1. Middleware: Functions that wrap handlers to add cross-cutting concerns
//    like logging, recovery from panics, and request timeouts.
//
// 2. Graceful shutdown: When the context passed to Run is cancelled,
//    the server stops accepting new connections but finishes processing
//    in-flight requests before shutting down.
//
// 3. Dependency injection: The logger is passed into the server and
//    handed to every handler through the request context.
//
// Parsing itself keeps no state between requests, so handlers never share
// anything mutable and need no locking.

package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/cabewaldrop/sqlparse/internal/logging"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server represents the HTTP server.
type Server struct {
	router *chi.Mux
	addr   string
	logger *slog.Logger
}

// NewServer creates a new HTTP server listening on addr (for example
// ":8080"). A nil logger discards log output.
func NewServer(addr string, logger *slog.Logger) *Server {
	logger = logging.OrDiscard(logger)
	r := chi.NewRouter()

	// Middleware stack
	// RequestID: Adds a unique ID to each request for tracing
	r.Use(middleware.RequestID)
	// RealIP: Extracts the real client IP from X-Forwarded-For headers
	r.Use(middleware.RealIP)
	// RequestLogger: Logs each request (method, path, status, duration)
	// through the structured logger
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	// Recoverer: Catches panics in handlers, logs stack trace, returns 500
	r.Use(middleware.Recoverer)
	// Timeout: Cancels request context after 30 seconds
	r.Use(middleware.Timeout(30 * time.Second))
	// WithLogger: Request-scoped logger carrying the request id
	r.Use(WithLogger(logger))

	s := &Server{
		router: r,
		addr:   addr,
		logger: logger,
	}

	s.routes()
	return s
}

// routes sets up all HTTP routes for the server.
func (s *Server) routes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(MaxBodyBytes))
		r.Post("/parse", s.handleAPIParse)
		r.Post("/tokenize", s.handleAPITokenize)
	})
}

// Router returns the chi router for testing purposes.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run listens on the server's address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
