/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Server serves a Handler over HTTP.
type Server struct {
	handler    *Handler
	listener   net.Listener
	httpServer *http.Server
	done       chan error
}

// Listen binds the address and starts serving in the background, use
// "127.0.0.1:0" for an ephemeral port.  The context's logger is inherited by
// request handlers.
func Listen(ctx context.Context, addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	handler := New()

	s := &Server{
		handler:  handler,
		listener: listener,
		httpServer: &http.Server{
			Handler:           handler.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(net.Listener) context.Context {
				return log.IntoContext(context.Background(), log.FromContext(ctx))
			},
		},
		done: make(chan error, 1),
	}

	log.FromContext(ctx).Info("starting fake API server", "addr", listener.Addr().String())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.done <- fmt.Errorf("http server error: %w", err)
			return
		}

		s.done <- nil
	}()

	return s, nil
}

// Handler exposes the handler, mostly so tests can count requests.
func (s *Server) Handler() *Handler {
	return s.handler
}

// URL is the base URL of the server.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Done reports the result of serving once the server has stopped.
func (s *Server) Done() <-chan error {
	return s.done
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.FromContext(ctx).Info("shutting down fake API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down fake API server: %w", err)
	}

	return nil
}
