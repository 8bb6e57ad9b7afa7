package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Server runs an http.Server with a managed lifecycle: Start blocks until
// the context is canceled or the listener fails, and cancellation drains
// in-flight requests before returning. Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	server         *http.Server
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	running        bool
}

// New creates a Server bound to addr. Without options it serves plain HTTP
// with the Default* timeouts and a discarded log.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start serves handler until ctx is canceled or the listener fails.
// Cancellation triggers a graceful drain bounded by the shutdown timeout,
// then Start returns ctx.Err(). A second Start while running returns
// ErrServerAlreadyRunning.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.running = true
	s.server = &http.Server{
		Addr:           s.addr,
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.listenAndServe(ctx)
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		if err := s.Stop(); err != nil {
			s.logger.Error("shutdown after cancellation failed",
				slog.Any("error", err),
			)
		}
		<-errCh
		return ctx.Err()
	}
}

// listenAndServe runs the accept loop until Shutdown. http.ErrServerClosed
// is the normal exit and is mapped to nil.
func (s *Server) listenAndServe(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	tlsEnabled := s.tlsConfig != nil
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "http server listening",
		slog.String("addr", s.addr),
		slog.Bool("tls", tlsEnabled),
	)

	var err error
	if tlsEnabled {
		err = srv.ListenAndServeTLS("", "")
	} else {
		err = srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drains in-flight requests within the shutdown timeout. Calling Stop
// on a server that is not running is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.logger.Info("draining http server",
		slog.Duration("timeout", s.shutdown),
	)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.running = false
	if err != nil {
		return err
	}

	s.logger.Info("http server stopped")
	return nil
}

// Run adapts the server lifecycle to an errgroup.Group: the returned
// function serves until ctx is canceled and reports cancellation as a
// clean exit, so only listener failures surface as group errors.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, handler)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

// Run serves handler on addr with default settings until ctx is canceled,
// draining in-flight requests before returning.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	return New(addr).Start(ctx, handler)
}
