// Package server wraps http.Server with signal-driven graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownFunc shuts down one component within the given deadline.
type ShutdownFunc func(ctx context.Context) error

// Server runs an HTTP server until SIGINT/SIGTERM, then drains
// connections and stops registered components.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger

	mu    sync.Mutex
	hooks []ShutdownFunc
}

// New creates a Server listening on the given port.
func New(handler http.Handler, port int, readTimeout, writeTimeout, shutdownTimeout time.Duration, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// OnShutdown registers a component to stop after the HTTP server has
// drained. Hooks run in reverse registration order, so register
// long-lived components first.
func (s *Server) OnShutdown(name string, fn ShutdownFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, func(ctx context.Context) error {
		s.logger.Info("stopping component", "name", name)
		if err := fn(ctx); err != nil {
			s.logger.Error("component shutdown failed", "name", name, "error", err)
			return fmt.Errorf("shutdown %s: %w", name, err)
		}
		return nil
	})
}

// Run blocks until the server fails or a termination signal arrives.
func (s *Server) Run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		s.logger.Info("shutdown signal received", "signal", sig.String())
		return s.shutdown()
	}
}

// shutdown drains in-flight requests, then runs the hooks. Every stage
// shares one deadline; hook errors are collected rather than aborting
// the remaining hooks.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("draining http server", "timeout", s.shutdownTimeout)
	s.httpServer.SetKeepAlivesEnabled(false)

	errs := make([]error, 0, len(s.hooks)+1)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("http server shutdown failed", "error", err)
		errs = append(errs, err)
	}

	s.mu.Lock()
	hooks := s.hooks
	s.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
