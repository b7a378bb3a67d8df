// Package source abstracts where the dataset comes from: the embedded
// SQLite store, or a remote states API when one is configured.
package source

import (
	"context"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Source Interface
// =============================================================================

// Source provides read access to the states dataset.
type Source interface {
	// ListStates returns all states ordered by the given sort key.
	ListStates(ctx context.Context, key states.SortKey) ([]states.State, error)

	// GetState returns a single state by slug.
	GetState(ctx context.Context, slug string) (*states.State, error)

	// Healthy reports whether the source is currently reachable.
	Healthy(ctx context.Context) error

	// Name identifies the source kind for logs and readiness checks.
	Name() string
}
