package source

import (
	"context"
	"fmt"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
	"github.com/robwiederstein/statesexplorer/internal/shell/store"
	"github.com/robwiederstein/statesexplorer/internal/shell/upstream"
)

// =============================================================================
// Remote Source
// =============================================================================

// Remote reads the dataset from a remote states API. The remote API has no
// single-state endpoint, so GetState scans the default-sorted listing.
type Remote struct {
	client *upstream.Client
}

// NewRemote creates a source backed by the given upstream client.
func NewRemote(c *upstream.Client) *Remote {
	return &Remote{client: c}
}

// ListStates fetches all states from the upstream API.
func (r *Remote) ListStates(ctx context.Context, key states.SortKey) ([]states.State, error) {
	return r.client.ListStates(ctx, key)
}

// GetState fetches the full listing and picks out one state by slug.
func (r *Remote) GetState(ctx context.Context, slug string) (*states.State, error) {
	list, err := r.client.ListStates(ctx, states.DefaultSortKey)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Slug == slug {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", store.ErrNotFound, slug)
}

// Healthy performs a listing fetch to verify the API responds.
func (r *Remote) Healthy(ctx context.Context) error {
	_, err := r.client.ListStates(ctx, states.DefaultSortKey)
	return err
}

// Name identifies the source kind.
func (r *Remote) Name() string { return "upstream" }
