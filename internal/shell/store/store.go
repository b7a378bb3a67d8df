package store

import (
	"context"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for the states dataset.
type Store interface {
	// ListStates returns all states ordered by the given sort key.
	ListStates(ctx context.Context, key states.SortKey) ([]states.State, error)

	// GetStateBySlug returns a single state by its slug.
	GetStateBySlug(ctx context.Context, slug string) (*states.State, error)

	// UpsertState inserts a state, or replaces the row with the same slug.
	UpsertState(ctx context.Context, s *states.State) error

	// CountStates returns the number of states in the dataset.
	CountStates(ctx context.Context) (int, error)

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying database connection.
	Close() error
}
