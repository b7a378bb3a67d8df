// Package upstream provides a client for a remote states API, the topology
// the explorer originally ran in: a thin UI in front of a hosted dataset
// service.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnreachable is returned when the upstream API cannot be reached.
	ErrUnreachable = errors.New("upstream API unreachable")

	// ErrBadStatus is returned for non-2xx upstream responses.
	ErrBadStatus = errors.New("upstream API returned error status")

	// ErrBadPayload is returned when the upstream response cannot be decoded.
	ErrBadPayload = errors.New("upstream API returned invalid payload")
)

// =============================================================================
// Client
// =============================================================================

// Config holds states API client configuration.
type Config struct {
	BaseURL       string        // e.g., "https://apis.robwiederstein.org"
	Timeout       time.Duration // Per-request timeout; generous for cold starts
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns default client configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       30 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    2 * time.Second,
	}
}

// Client fetches state data from a remote states API.
type Client struct {
	baseURL    string
	retries    int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new states API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		retries:    cfg.RetryAttempts,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With("component", "upstream_client"),
	}
}

// ListStates fetches all states from the upstream API, sorted by the given
// key. Transient failures are retried with a fixed delay.
func (c *Client) ListStates(ctx context.Context, key states.SortKey) ([]states.State, error) {
	endpoint := fmt.Sprintf("%s/states?sort_by=%s", c.baseURL, url.QueryEscape(string(key)))

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		list, err := c.fetch(ctx, endpoint)
		if err == nil {
			return list, nil
		}
		lastErr = err

		// Decode failures won't improve on retry.
		if errors.Is(err, ErrBadPayload) {
			return nil, err
		}

		c.logger.Warn("upstream fetch failed",
			"attempt", attempt,
			"sort_by", key,
			"error", err,
		)

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, lastErr
}

// fetch performs a single GET against the upstream API.
func (c *Client) fetch(ctx context.Context, endpoint string) ([]states.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain the body so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var list []states.State
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	for i := range list {
		if list[i].Slug == "" {
			list[i].Slug = states.Slugify(list[i].Name)
		}
	}
	return list, nil
}
