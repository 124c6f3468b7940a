package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

const (
	defaultAddress         = ":8080"
	defaultShutdownTimeout = 30 * time.Second
)

// RunOption configures App.Run.
type RunOption func(*server)

// Logger sets the server logger. A nil logger keeps logging disabled.
func Logger(l *slog.Logger) RunOption {
	return func(s *server) {
		if l != nil {
			s.log = l
		}
	}
}

// ShutdownTimeout bounds draining in-flight requests plus running the
// shutdown hooks. Defaults to 30s; non-positive values are ignored.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(s *server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers fn to run after the HTTP server has stopped.
// Hooks run in registration order and share the shutdown deadline:
//
//	internal.ShutdownHook(func(ctx context.Context) error {
//	    sentry.Flush(2 * time.Second)
//	    return nil
//	})
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(s *server) {
		if fn != nil {
			s.hooks = append(s.hooks, fn)
		}
	}
}

// OnListen is called with the bound address once the listener is open.
// Pair it with ":0" to learn the port.
func OnListen(fn func(net.Addr)) RunOption {
	return func(s *server) { s.onListen = fn }
}

// WithContext sets the context whose cancellation, like SIGINT or SIGTERM,
// starts a graceful shutdown.
func WithContext(ctx context.Context) RunOption {
	return func(s *server) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

type server struct {
	ctx             context.Context
	log             *slog.Logger
	onListen        func(net.Addr)
	hooks           []func(context.Context) error
	shutdownTimeout time.Duration
}

func newServer(opts []RunOption) *server {
	s := &server{
		ctx:             context.Background(),
		log:             logger.NewNope(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *server) httpServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
}

// run serves h on addr until the context is cancelled or a signal arrives,
// then drains and runs the hooks.
func (s *server) run(addr string, h http.Handler) error {
	if addr == "" {
		addr = defaultAddress
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if s.onListen != nil {
		s.onListen(ln.Addr())
	}

	srv := s.httpServer(addr, h)
	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	return s.shutdown(srv)
}

func (s *server) shutdown(srv *http.Server) error {
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	for _, hook := range s.hooks {
		if herr := hook(ctx); herr != nil {
			s.log.Error("shutdown hook failed", slog.Any("error", herr))
			err = errors.Join(err, herr)
		}
	}

	if err != nil {
		s.log.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	s.log.Info("shutdown completed")
	return nil
}
