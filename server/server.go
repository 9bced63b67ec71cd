package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// Server is the native host: it serves a Handler over net/http the same way
// the WASI HTTP runtime does inside a component.
type Server struct {
	opts       ServerOpts
	listener   net.Listener
	httpServer *http.Server
	closed     atomic.Bool
	errCh      chan error
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Err reports an error that stopped the server. It is not sent on Close or Shutdown.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Shutdown the server immediately.
func (s *Server) Close() error {
	s.closed.Store(true)
	return s.httpServer.Close()
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closed.Store(true)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) serve() {
	err := s.httpServer.Serve(s.listener)
	if err == nil || errors.Is(err, http.ErrServerClosed) || s.closed.Load() {
		return
	}
	s.opts.Logger.Error("server stopped", zap.Error(err))
	s.errCh <- err
}

func newServer(opts ServerOpts, handler Handler) *Server {
	opts.setDefaults()
	return &Server{
		opts: opts,
		httpServer: &http.Server{
			Addr:           opts.Address,
			Handler:        NewHTTPHandler(handler, opts),
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			MaxHeaderBytes: opts.MaxHeaderBytes,
			ErrorLog:       zap.NewStdLog(opts.Logger),
		},
		errCh: make(chan error, 1),
	}
}

// Starts the HTTP server with the given options and handler.
// It returns once the listener is bound.
func Serve(opts ServerOpts, handler Handler) (*Server, error) {
	s := newServer(opts, handler)

	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return nil, err
	}
	s.listener = listener
	s.opts.Logger.Info("listening", zap.String("address", listener.Addr().String()))

	go s.serve()
	return s, nil
}
