// Package server exposes business-day queries over a loaded calendar as a
// small JSON HTTP API. The calendar is immutable, so handlers share it
// without locking.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/username/business-calendar/pkg/calendar"
	"go.uber.org/zap"
)

// Server represents the HTTP query server
type Server struct {
	cal             *calendar.Calendar
	logger          *zap.Logger
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// Options holds server timing configuration
type Options struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// New creates a new Server over the given calendar
func New(cal *calendar.Calendar, opts Options, logger *zap.Logger) *Server {
	s := &Server{
		cal:             cal,
		logger:          logger,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:        opts.ListenAddr,
		Handler:     s.routes(),
		ReadTimeout: opts.ReadTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/business-day", s.handleBusinessDay)
	mux.HandleFunc("/api/v1/roll", s.handleRoll)
	mux.HandleFunc("/api/v1/step", s.handleStep)
	mux.HandleFunc("/api/v1/offset", s.handleOffset)
	return mux
}

// Start runs the server until an error occurs or a termination signal is
// received, then shuts down gracefully.
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("Server started",
		zap.String("addr", s.httpServer.Addr))

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case sig := <-sigChan:
		s.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
		s.logger.Info("Server stopped")
		return nil
	}
}
