package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/cache"
	"github.com/robwiederstein/statesexplorer/internal/shell/metrics"
)

// =============================================================================
// Cached Source
// =============================================================================

// Listing is a dataset listing plus its cache provenance.
type Listing struct {
	States    []states.State
	Stale     bool
	FetchedAt time.Time
}

// Cached wraps a Source with a per-sort-key TTL cache. When the source
// fails and a stale entry is still held, the stale entry is served instead
// of the error.
type Cached struct {
	src     Source
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCached creates a caching layer over src. metrics may be nil.
func NewCached(src Source, c *cache.Cache, m *metrics.Metrics, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{
		src:     src,
		cache:   c,
		metrics: m,
		logger:  logger.With("component", "cached_source"),
	}
}

// List returns the listing for the sort key, from cache when fresh.
func (c *Cached) List(ctx context.Context, key states.SortKey) (Listing, error) {
	if list, at, fresh, ok := c.cache.Get(key); ok && fresh {
		if c.metrics != nil {
			c.metrics.CacheHits.Inc()
		}
		return Listing{States: list, FetchedAt: at}, nil
	}

	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}

	start := time.Now()
	list, err := c.src.ListStates(ctx, key)
	if c.metrics != nil {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		// Serve stale data rather than an error while the source is down.
		if stale, at, _, ok := c.cache.Get(key); ok {
			if c.metrics != nil {
				c.metrics.CacheStaleServed.Inc()
			}
			c.logger.Warn("source failed, serving stale listing",
				"sort_by", key,
				"fetched_at", at,
				"error", err,
			)
			return Listing{States: stale, Stale: true, FetchedAt: at}, nil
		}
		return Listing{}, err
	}

	c.cache.Set(key, list)
	return Listing{States: list, FetchedAt: time.Now()}, nil
}

// Get returns a single state by slug. Lookups go straight to the source;
// the cache only covers listings.
func (c *Cached) Get(ctx context.Context, slug string) (*states.State, error) {
	return c.src.GetState(ctx, slug)
}

// Refresh forces a source fetch for the key and repopulates the cache.
func (c *Cached) Refresh(ctx context.Context, key states.SortKey) error {
	list, err := c.src.ListStates(ctx, key)
	if err != nil {
		return err
	}
	c.cache.Set(key, list)
	return nil
}

// Healthy reports whether the underlying source is reachable.
func (c *Cached) Healthy(ctx context.Context) error {
	return c.src.Healthy(ctx)
}

// SourceName identifies the wrapped source kind.
func (c *Cached) SourceName() string {
	return c.src.Name()
}
