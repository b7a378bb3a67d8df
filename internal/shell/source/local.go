package source

import (
	"context"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/store"
)

// =============================================================================
// Local Source
// =============================================================================

// Local reads the dataset from the embedded SQLite store.
type Local struct {
	store store.Store
}

// NewLocal creates a source backed by the given store.
func NewLocal(s store.Store) *Local {
	return &Local{store: s}
}

// ListStates returns all states ordered by the given sort key.
func (l *Local) ListStates(ctx context.Context, key states.SortKey) ([]states.State, error) {
	return l.store.ListStates(ctx, key)
}

// GetState returns a single state by slug.
func (l *Local) GetState(ctx context.Context, slug string) (*states.State, error) {
	return l.store.GetStateBySlug(ctx, slug)
}

// Healthy pings the database.
func (l *Local) Healthy(ctx context.Context) error {
	return l.store.Ping(ctx)
}

// Name identifies the source kind.
func (l *Local) Name() string { return "sqlite" }
