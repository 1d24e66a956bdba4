// Package server supervises the long-running parts of the showcase process.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/highlight"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/metrics"
)

// Runner is a component that serves until ctx is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// Config holds server configuration.
type Config struct {
	MetricsAddress  string
	ShutdownTimeout time.Duration
}

// Deps are the components the server runs. HTTP is required; Watcher and
// Highlighter are optional.
type Deps struct {
	HTTP        Runner
	Watcher     *catalog.Watcher
	Highlighter *highlight.Highlighter
	Logger      *log.Logger
}

// Server runs the site, the metrics endpoint and the catalog watcher
// together. The first one to fail stops the rest.
type Server struct {
	config      *Config
	http        Runner
	metrics     *metrics.Server
	watcher     *catalog.Watcher
	highlighter *highlight.Highlighter
	logger      *log.Logger
}

// New creates a new showcase server.
func New(cfg *Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.HTTP == nil {
		return nil, errors.New("http runner is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = logging.Component("server")
	}

	s := &Server{
		config:      cfg,
		http:        deps.HTTP,
		watcher:     deps.Watcher,
		highlighter: deps.Highlighter,
		logger:      deps.Logger,
	}
	if cfg.MetricsAddress != "" {
		s.metrics = metrics.NewServer(cfg.MetricsAddress, deps.Logger)
	}
	if s.watcher != nil {
		s.watcher.OnReload(s.handleReload)
	}
	return s, nil
}

// handleReload keeps metrics and the highlight cache in step with the
// served catalog.
func (s *Server) handleReload(c *catalog.Catalog, err error) {
	if err != nil {
		metrics.RecordReload(0, err)
		return
	}
	metrics.RecordReload(c.Len(), nil)
	if s.highlighter != nil {
		s.highlighter.Flush()
	}
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.http.Run(gctx); err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	if s.metrics != nil {
		g.Go(s.metrics.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
			defer cancel()
			return s.metrics.Shutdown(shutdownCtx)
		})
	}

	if s.watcher != nil {
		g.Go(func() error {
			if err := s.watcher.Run(gctx); err != nil {
				return fmt.Errorf("catalog watcher: %w", err)
			}
			return nil
		})
	}

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// MetricsAddress returns the metrics listen address, or "" when disabled.
func (s *Server) MetricsAddress() string {
	if s.metrics == nil {
		return ""
	}
	return s.metrics.Addr()
}
