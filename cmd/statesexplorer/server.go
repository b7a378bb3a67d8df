package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/api"
	"github.com/robwiederstein/statesexplorer/internal/shell/cache"
	"github.com/robwiederstein/statesexplorer/internal/shell/metrics"
	"github.com/robwiederstein/statesexplorer/internal/shell/snapshot"
	"github.com/robwiederstein/statesexplorer/internal/shell/source"
	"github.com/robwiederstein/statesexplorer/internal/shell/store"
	"github.com/robwiederstein/statesexplorer/internal/shell/upstream"
	"github.com/robwiederstein/statesexplorer/internal/shell/workers"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatabaseError   = 2
	ExitSnapshotError   = 3
	ExitHTTPServerError = 4
)

// =============================================================================
// Server
// =============================================================================

// Server represents the states explorer application server.
type Server struct {
	config     *Config
	httpServer *http.Server
	store      store.Store
	refresher  *workers.Refresher
	logger     *slog.Logger
}

// NewServer creates a new server with the given config.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	// Connect to database. The store is opened even in upstream mode so
	// snapshot-seeded rows survive a switch back to local serving.
	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitDatabaseError,
		}
	}

	// Apply an optional snapshot over the seeded dataset
	if cfg.Database.Snapshot != "" {
		if err := importSnapshot(cfg.Database.Snapshot, s, logger); err != nil {
			s.Close()
			return nil, &ServerError{
				Op:       "NewServer",
				Err:      err,
				ExitCode: ExitSnapshotError,
			}
		}
	}

	// Pick the dataset source: remote API when configured, local otherwise
	var src source.Source
	if cfg.Upstream.URL != "" {
		src = source.NewRemote(upstream.NewClient(upstream.Config{
			BaseURL:       cfg.Upstream.URL,
			Timeout:       cfg.Upstream.Timeout,
			RetryAttempts: cfg.Upstream.RetryAttempts,
			RetryDelay:    cfg.Upstream.RetryDelay,
		}, logger))
		logger.Info("serving from upstream API", "url", cfg.Upstream.URL)
	} else {
		src = source.NewLocal(s)
		logger.Info("serving from embedded dataset", "dsn", cfg.Database.DSN)
	}

	m := metrics.New()
	cached := source.NewCached(src, cache.New(cfg.Cache.TTL), m, logger)

	// Background cache warmer for the default sort
	refresher := workers.NewRefresher(cached, workers.RefresherConfig{
		Interval:     cfg.Cache.RefreshInterval,
		FetchTimeout: cfg.Upstream.Timeout,
		Keys:         []states.SortKey{states.DefaultSortKey},
	}, m, logger)

	// Create HTTP handler
	handler := api.NewHandler(api.Config{
		Source:         cached,
		Metrics:        m,
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		store:      s,
		refresher:  refresher,
		logger:     logger,
	}, nil
}

// importSnapshot upserts every state from a YAML snapshot file.
func importSnapshot(path string, s store.Store, logger *slog.Logger) error {
	list, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	ctx := context.Background()
	for i := range list {
		if err := s.UpsertState(ctx, &list[i]); err != nil {
			return err
		}
	}
	logger.Info("snapshot imported", "path", path, "states", len(list))
	return nil
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start cache refresher in background
	s.refresher.Start()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			"address", s.config.Server.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	// Stop cache refresher
	s.refresher.Stop()

	// Close database
	if err := s.store.Close(); err != nil {
		s.logger.Error("database close error", "error", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
