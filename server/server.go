// Package server exposes the assistant tasks over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bitrise-io/bitrise-code-assistant/assistant"
	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
)

type Server struct {
	settings   common.Server
	service    *assistant.Service
	httpServer *http.Server
}

func New(settings common.Server, service *assistant.Service) *Server {
	s := &Server{
		settings: settings,
		service:  service,
	}
	s.httpServer = &http.Server{
		Addr:              settings.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the full middleware chain around the route table
func (s *Server) Handler() http.Handler {
	return requestID(accessLog(recoverPanic(s.routes())))
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	logger.Infof("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Infof("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
