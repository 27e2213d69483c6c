// Package api provides the HTTP front door for the campus bot.
//
// Routes:
//   - POST /chat    - ask a question, get an answer with sources
//   - GET  /sources - sample the indexed corpus
//   - GET  /health  - liveness and index size
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/campuslabs/ubot/internal/core/ports/driven"
	"github.com/campuslabs/ubot/internal/core/ports/driving"
	"github.com/campuslabs/ubot/internal/logger"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = ":8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation against a local model can be slow, so this is generous.
	WriteTimeout = 180 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the campus bot REST API.
type Server struct {
	mux *http.ServeMux

	// Handlers
	chat    *ChatHandler
	sources *SourcesHandler
	health  *HealthHandler
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(answers driving.AnswerService, sessions driven.SessionStore, index driven.VectorIndex, topK int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		chat:    NewChatHandler(answers, sessions, topK),
		sources: NewSourcesHandler(index),
		health:  NewHealthHandler(index),
	}

	s.chat.RegisterRoutes(mux)
	s.sources.RegisterRoutes(mux)
	s.health.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware, loggingMiddleware)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
