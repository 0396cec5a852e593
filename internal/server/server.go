package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"calculator-service/internal/config"
	"calculator-service/internal/observability"
)

// Server runs the HTTP facade and owns its lifecycle.
type Server struct {
	addr            string
	srv             *http.Server
	lifecycle       *Lifecycle
	shutdownTimeout time.Duration

	listenAddr net.Addr
}

func New(cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		addr: cfg.Addr(),
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		lifecycle:       NewLifecycle(),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

func (s *Server) Lifecycle() *Lifecycle {
	return s.lifecycle
}

// Addr returns the bound listener address, or nil while the server is not
// yet ready or failed to bind.
func (s *Server) Addr() net.Addr {
	select {
	case <-s.lifecycle.Ready():
		return s.listenAddr
	default:
		return nil
	}
}

// Run binds the listener, marks the server ready and serves until ctx is
// cancelled, then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.addr)
	}

	s.listenAddr = ln.Addr()
	s.lifecycle.MarkReady()

	observability.Logger.Info("server ready",
		zap.String("addr", ln.Addr().String()),
		zap.String("state", string(s.lifecycle.State())),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")

	case <-ctx.Done():
		observability.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	}
}
