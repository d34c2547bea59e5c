/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server exposes a Collector on /metrics.
type Server struct {
	srv  *http.Server
	done chan struct{}
}

// Serve starts serving c on addr in the background until ctx is done or
// Shutdown is called.
func Serve(ctx context.Context, addr string, c *Collector, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = s.Shutdown()
		case <-s.done:
		}
	}()

	return s
}

// Shutdown stops the server and waits for it to exit.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
