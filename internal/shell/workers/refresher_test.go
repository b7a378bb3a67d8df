package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/cache"
	"github.com/robwiederstein/statesexplorer/internal/shell/source"
)

// =============================================================================
// Test Helpers
// =============================================================================

// countingSource counts ListStates calls behind a mutex.
type countingSource struct {
	mu    sync.Mutex
	calls int
}

func (c *countingSource) ListStates(ctx context.Context, key states.SortKey) ([]states.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return []states.State{{Name: "Iowa", Slug: "iowa"}}, nil
}

func (c *countingSource) GetState(ctx context.Context, slug string) (*states.State, error) {
	return nil, nil
}

func (c *countingSource) Healthy(ctx context.Context) error { return nil }

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// =============================================================================
// Test Configuration
// =============================================================================

func TestDefaultRefresherConfig(t *testing.T) {
	config := DefaultRefresherConfig()

	assert.Equal(t, 5*time.Minute, config.Interval)
	assert.Equal(t, 30*time.Second, config.FetchTimeout)
	assert.Equal(t, []states.SortKey{states.SortByName}, config.Keys)
}

func TestNewRefresher_DefaultConfig(t *testing.T) {
	src := source.NewCached(&countingSource{}, cache.New(time.Minute), nil, nil)
	r := NewRefresher(src, RefresherConfig{}, nil, nil)

	assert.NotNil(t, r)
	assert.Equal(t, 5*time.Minute, r.config.Interval)
	assert.Equal(t, 30*time.Second, r.config.FetchTimeout)
	assert.Len(t, r.config.Keys, 1)
}

// =============================================================================
// Test Lifecycle
// =============================================================================

func TestRefresher_StartWarmsCacheThenStops(t *testing.T) {
	cs := &countingSource{}
	store := cache.New(time.Minute)
	src := source.NewCached(cs, store, nil, nil)

	r := NewRefresher(src, RefresherConfig{
		Interval:     time.Hour, // first cycle only
		FetchTimeout: time.Second,
	}, nil, nil)

	r.Start()

	// The initial cycle runs immediately; wait for the entry to land.
	require.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, 10*time.Millisecond)

	r.Stop()
	assert.Equal(t, 1, cs.count())
}

func TestRefresher_PeriodicCycles(t *testing.T) {
	cs := &countingSource{}
	src := source.NewCached(cs, cache.New(time.Minute), nil, nil)

	r := NewRefresher(src, RefresherConfig{
		Interval:     20 * time.Millisecond,
		FetchTimeout: time.Second,
	}, nil, nil)

	r.Start()
	require.Eventually(t, func() bool {
		return cs.count() >= 3
	}, time.Second, 5*time.Millisecond)
	r.Stop()
}

func TestRefresher_StopIsIdempotent(t *testing.T) {
	src := source.NewCached(&countingSource{}, cache.New(time.Minute), nil, nil)
	r := NewRefresher(src, RefresherConfig{Interval: time.Hour}, nil, nil)

	r.Start()
	r.Stop()
	r.Stop()
}

func TestRefresher_WarmsMultipleKeys(t *testing.T) {
	cs := &countingSource{}
	store := cache.New(time.Minute)
	src := source.NewCached(cs, store, nil, nil)

	r := NewRefresher(src, RefresherConfig{
		Interval: time.Hour,
		Keys:     []states.SortKey{states.SortByName, states.SortByPopulation, states.SortByIncome},
	}, nil, nil)

	r.Start()
	require.Eventually(t, func() bool {
		return store.Len() == 3
	}, time.Second, 10*time.Millisecond)
	r.Stop()
}
