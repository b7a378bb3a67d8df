// Package states contains the core domain types for the U.S. states dataset.
// This is part of the Functional Core - all functions are pure with no I/O.
package states

import (
	"errors"
	"fmt"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrNameRequired is returned when a state has no name.
	ErrNameRequired = errors.New("state name is required")

	// ErrSlugMismatch is returned when a state's slug does not match its name.
	ErrSlugMismatch = errors.New("state slug does not match name")

	// ErrNegativeValue is returned when a numeric field is negative.
	ErrNegativeValue = errors.New("numeric fields cannot be negative")

	// ErrInvalidSortKey is returned for sort keys outside the known column set.
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// =============================================================================
// State
// =============================================================================

// State holds one row of the 1970s state.x77 dataset.
//
// Field provenance:
//   - Population: estimate in thousands, July 1975
//   - Income: per capita income in dollars, 1974
//   - Illiteracy: percent of population, 1970
//   - LifeExp: life expectancy in years, 1969-71
//   - Murder: murder and non-negligent manslaughter rate per 100,000, 1976
//   - HSGrad: percent high-school graduates, 1970
//   - Frost: mean days with minimum temperature below freezing, 1931-1960
//   - Area: land area in square miles
type State struct {
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

// NewState creates a state with a derived slug.
func NewState(name string, population, income int64, illiteracy, lifeExp, murder, hsGrad float64, frost, area int64) (*State, error) {
	s := &State{
		Name:       name,
		Slug:       Slugify(name),
		Population: population,
		Income:     income,
		Illiteracy: illiteracy,
		LifeExp:    lifeExp,
		Murder:     murder,
		HSGrad:     hsGrad,
		Frost:      frost,
		Area:       area,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the state's invariants.
func (s *State) Validate() error {
	if s.Name == "" {
		return ErrNameRequired
	}
	if s.Slug != Slugify(s.Name) {
		return fmt.Errorf("%w: got %q, want %q", ErrSlugMismatch, s.Slug, Slugify(s.Name))
	}
	if s.Population < 0 || s.Income < 0 || s.Illiteracy < 0 || s.LifeExp < 0 ||
		s.Murder < 0 || s.HSGrad < 0 || s.Frost < 0 || s.Area < 0 {
		return ErrNegativeValue
	}
	return nil
}
