// Package workers contains background workers for the explorer.
package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/metrics"
	"github.com/robwiederstein/statesexplorer/internal/shell/source"
)

// RefresherConfig configures the cache refresher worker.
type RefresherConfig struct {
	// Interval is the time between refresh cycles.
	// Default: 5 minutes (half the cache TTL, so the default-sort entry
	// never goes stale while the source is healthy).
	Interval time.Duration

	// FetchTimeout is the timeout for a single refresh fetch.
	// Default: 30 seconds.
	FetchTimeout time.Duration

	// Keys are the sort keys to keep warm.
	// Default: the default sort key only.
	Keys []states.SortKey
}

// DefaultRefresherConfig returns the default configuration.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Interval:     5 * time.Minute,
		FetchTimeout: 30 * time.Second,
		Keys:         []states.SortKey{states.DefaultSortKey},
	}
}

// Refresher periodically re-fetches dataset listings so requests rarely pay
// the source round trip. It is the background counterpart of the request
// path's read-through cache.
type Refresher struct {
	src     *source.Cached
	config  RefresherConfig
	metrics *metrics.Metrics
	logger  *slog.Logger

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefresher creates a new cache refresher worker. metrics may be nil.
func NewRefresher(src *source.Cached, config RefresherConfig, m *metrics.Metrics, logger *slog.Logger) *Refresher {
	if config.Interval == 0 {
		config.Interval = 5 * time.Minute
	}
	if config.FetchTimeout == 0 {
		config.FetchTimeout = 30 * time.Second
	}
	if len(config.Keys) == 0 {
		config.Keys = []states.SortKey{states.DefaultSortKey}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Refresher{
		src:     src,
		config:  config,
		metrics: m,
		logger:  logger.With("component", "refresher"),
	}
}

// Start begins the refresher background goroutine.
func (r *Refresher) Start() {
	r.ctx, r.cancel = context.WithCancel(context.Background())

	r.wg.Add(1)
	go r.run()

	r.logger.Info("refresher started",
		"interval", r.config.Interval,
		"keys", len(r.config.Keys),
	)
}

// Stop gracefully stops the refresher.
// It waits for any in-progress refresh to complete.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.logger.Info("refresher stopped")
}

// run is the main loop that refreshes listings periodically.
func (r *Refresher) run() {
	defer r.wg.Done()

	// Run immediately on start so the first request hits a warm cache.
	r.runCycle()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.runCycle()
		}
	}
}

// runCycle refreshes every configured sort key once.
func (r *Refresher) runCycle() {
	for _, key := range r.config.Keys {
		ctx, cancel := context.WithTimeout(r.ctx, r.config.FetchTimeout)
		err := r.src.Refresh(ctx, key)
		cancel()

		if err != nil {
			if r.metrics != nil {
				r.metrics.RefreshFailures.Inc()
			}
			r.logger.Warn("refresh failed", "sort_by", key, "error", err)
			continue
		}
		r.logger.Debug("listing refreshed", "sort_by", key)
	}

	if r.metrics != nil {
		r.metrics.RefreshCycles.Inc()
	}
}
