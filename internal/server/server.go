// Package server provides the HTTP interface of the dashboard.
//
// Routes mirror the operations of [dashboard.Service]; static files for the
// dashboard page are served from a directory. [Server.Serve] owns the process
// lifecycle: it runs the HTTP server and the liveness supervisor side by side
// and closes the listener when either stops.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/repodash/internal/dashboard"
	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/liveness"
	"github.com/raphi011/repodash/internal/log"
)

const shutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	// StaticDir is served for paths without a route; empty disables it.
	StaticDir string
	// Supervisor shuts the server down when idle; nil keeps it running.
	Supervisor *liveness.Supervisor
	// Logger receives request logs; nil discards them.
	Logger *log.Logger
}

// Server provides the HTTP interface for the dashboard
type Server struct {
	service    *dashboard.Service
	router     *httprouter.Router
	staticDir  string
	supervisor *liveness.Supervisor
	logger     *log.Logger
}

// New creates a server for service.
func New(service *dashboard.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	s := &Server{
		service:    service,
		router:     httprouter.New(),
		staticDir:  opts.StaticDir,
		supervisor: opts.Supervisor,
		logger:     logger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/list", s.handleList)
	s.router.GET("/get/*dir", s.handleStatus)
	s.router.POST("/push/*dir", s.handleSync(git.Push))
	s.router.POST("/pull/*dir", s.handleSync(git.Pull))
	s.router.GET("/keepalive", s.handleKeepalive)

	if s.staticDir != "" {
		s.router.NotFound = http.HandlerFunc(s.handleStatic)
	}
	s.router.PanicHandler = s.handlePanic
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.middleware(s.router)
}

// Serve accepts connections on ln until ctx is done or the supervisor
// reports expiry, then shuts the HTTP server down gracefully.
// It returns [liveness.ErrExpired] after an idle shutdown and nil after
// cancellation.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	if s.supervisor != nil {
		g.Go(func() error {
			if err := s.supervisor.Run(gctx); errors.Is(err, liveness.ErrExpired) {
				s.logger.Printf("No keepalive received for %s, shutting down...\n", s.supervisor.Timeout())
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// ListenAndServe listens on addr and calls [Server.Serve].
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}
