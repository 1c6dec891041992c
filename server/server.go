// Package server owns the HTTP server lifecycle: echo setup, route
// registration, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/cookbot/internal/profile"
	apiv1 "github.com/hrygo/cookbot/server/router/api/v1"
	"github.com/hrygo/cookbot/store"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	// Provider calls can take a while on long recipes.
	writeTimeout    = 2 * time.Minute
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server wraps the echo instance and its dependencies.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: echoServer,
		apiService: apiv1.NewAPIV1Service(ctx, profile, store),
	}
	s.apiService.Register(echoServer)

	return s, nil
}

// Start serves HTTP until the context is cancelled, then shuts down
// gracefully with a bounded drain window.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	s.echoServer.Server.ReadHeaderTimeout = readHeaderTimeout
	s.echoServer.Server.ReadTimeout = readTimeout
	s.echoServer.Server.WriteTimeout = writeTimeout
	s.echoServer.Server.IdleTimeout = idleTimeout

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "mode", s.Profile.Mode)
		errCh <- s.echoServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down server")
	}
	slog.Info("server stopped")
	return nil
}

// Shutdown closes the store after the HTTP server has drained.
func (s *Server) Shutdown(ctx context.Context) {
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}
	slog.Info("cookbot stopped properly")
}
