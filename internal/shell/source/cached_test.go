package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/cache"
)

// =============================================================================
// Test Helpers
// =============================================================================

var errSourceDown = errors.New("source down")

// fakeSource is a scriptable Source for cache-layer tests.
type fakeSource struct {
	list  []states.State
	err   error
	calls int
}

func (f *fakeSource) ListStates(ctx context.Context, key states.SortKey) ([]states.State, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeSource) GetState(ctx context.Context, slug string) (*states.State, error) {
	for i := range f.list {
		if f.list[i].Slug == slug {
			return &f.list[i], nil
		}
	}
	return nil, errSourceDown
}

func (f *fakeSource) Healthy(ctx context.Context) error { return f.err }

func (f *fakeSource) Name() string { return "fake" }

func testListing() []states.State {
	return []states.State{
		{Name: "Iowa", Slug: "iowa", Population: 2861},
		{Name: "Texas", Slug: "texas", Population: 12237},
	}
}

// =============================================================================
// Cached Tests
// =============================================================================

func TestCached_FetchesOnMissThenServesFromCache(t *testing.T) {
	src := &fakeSource{list: testListing()}
	c := NewCached(src, cache.New(time.Minute), nil, nil)

	first, err := c.List(context.Background(), states.SortByName)
	require.NoError(t, err)
	assert.False(t, first.Stale)
	assert.Len(t, first.States, 2)
	assert.Equal(t, 1, src.calls)

	second, err := c.List(context.Background(), states.SortByName)
	require.NoError(t, err)
	assert.Len(t, second.States, 2)
	assert.Equal(t, 1, src.calls, "fresh entry should not hit the source")
}

func TestCached_ServesStaleWhenSourceFails(t *testing.T) {
	src := &fakeSource{list: testListing()}
	// Short TTL so the entry goes stale quickly; entries survive until 2x TTL.
	store := cache.New(50 * time.Millisecond)
	c := NewCached(src, store, nil, nil)

	_, err := c.List(context.Background(), states.SortByName)
	require.NoError(t, err)

	// Entry ages past the TTL, and the source goes down.
	time.Sleep(60 * time.Millisecond)
	src.err = errSourceDown

	got, err := c.List(context.Background(), states.SortByName)
	require.NoError(t, err)
	assert.True(t, got.Stale)
	assert.Len(t, got.States, 2)
}

func TestCached_ErrorWhenCacheColdAndSourceFails(t *testing.T) {
	src := &fakeSource{err: errSourceDown}
	c := NewCached(src, cache.New(time.Minute), nil, nil)

	_, err := c.List(context.Background(), states.SortByName)
	assert.ErrorIs(t, err, errSourceDown)
}

func TestCached_RefreshRepopulates(t *testing.T) {
	src := &fakeSource{list: testListing()}
	store := cache.New(time.Minute)
	c := NewCached(src, store, nil, nil)

	require.NoError(t, c.Refresh(context.Background(), states.SortByName))
	assert.Equal(t, 1, store.Len())

	// A subsequent List is served from cache.
	_, err := c.List(context.Background(), states.SortByName)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestCached_RefreshPropagatesSourceError(t *testing.T) {
	src := &fakeSource{err: errSourceDown}
	c := NewCached(src, cache.New(time.Minute), nil, nil)

	err := c.Refresh(context.Background(), states.SortByName)
	assert.ErrorIs(t, err, errSourceDown)
}

func TestCached_GetBypassesCache(t *testing.T) {
	src := &fakeSource{list: testListing()}
	c := NewCached(src, cache.New(time.Minute), nil, nil)

	st, err := c.Get(context.Background(), "texas")
	require.NoError(t, err)
	assert.Equal(t, "Texas", st.Name)
}
