/*
Package httpapi exposes the portfolio tools over HTTP.

Routes:
  - POST /api/call    body {"name": "...", "arguments": {...}}
  - GET  /api/health  liveness report
  - GET  /api/tools   tool catalog

Responses are JSON. Every route answers OPTIONS preflights with 204 and sets
permissive CORS headers.
*/
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/logging"
	"github.com/khanglvm/portfolio-mcp/internal/tools"
)

// ServerName is reported by the health route.
const ServerName = "portfolio-mcp"

const shutdownTimeout = 10 * time.Second

// Server serves the tool registry over HTTP.
type Server struct {
	registry *tools.Registry
	version  string
	logger   *log.Logger
	now      func() time.Time
}

// NewServer creates an HTTP server for registry.
func NewServer(registry *tools.Registry, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		registry: registry,
		version:  version,
		logger:   logger,
		now:      time.Now,
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
