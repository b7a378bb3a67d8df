package api

import (
	"time"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Response Types
// =============================================================================

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the response for the readiness endpoint.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ErrorResponse is the error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StateResponse is one state row in API responses.
type StateResponse struct {
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	Population int64   `json:"population"`
	Income     int64   `json:"income"`
	Illiteracy float64 `json:"illiteracy"`
	LifeExp    float64 `json:"life_exp"`
	Murder     float64 `json:"murder"`
	HSGrad     float64 `json:"hs_grad"`
	Frost      int64   `json:"frost"`
	Area       int64   `json:"area"`
}

// ListStatesResponse is the envelope for the listing endpoint.
type ListStatesResponse struct {
	SortBy    string          `json:"sort_by"`
	Count     int             `json:"count"`
	Stale     bool            `json:"stale"`
	FetchedAt time.Time       `json:"fetched_at"`
	States    []StateResponse `json:"states"`
}

// ColumnResponse describes one dataset column.
type ColumnResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Help  string `json:"help"`
}

// ColumnsResponse is the envelope for the column metadata endpoint.
type ColumnsResponse struct {
	Default string           `json:"default"`
	Columns []ColumnResponse `json:"columns"`
}

// =============================================================================
// Mapping
// =============================================================================

func stateToResponse(s states.State) StateResponse {
	return StateResponse{
		Name:       s.Name,
		Slug:       s.Slug,
		Population: s.Population,
		Income:     s.Income,
		Illiteracy: s.Illiteracy,
		LifeExp:    s.LifeExp,
		Murder:     s.Murder,
		HSGrad:     s.HSGrad,
		Frost:      s.Frost,
		Area:       s.Area,
	}
}

func statesToResponse(list []states.State) []StateResponse {
	out := make([]StateResponse, len(list))
	for i, s := range list {
		out[i] = stateToResponse(s)
	}
	return out
}
