// Package snapshot reads and writes YAML snapshots of the states dataset.
// Snapshots are the operational interchange format: the API can export one,
// and the server can seed extra rows from one at startup.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrEmptySnapshot is returned when a snapshot contains no states.
	ErrEmptySnapshot = errors.New("snapshot contains no states")

	// ErrInvalidSnapshot is returned when a snapshot fails to parse or validate.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// =============================================================================
// Snapshot Format
// =============================================================================

// Snapshot is the on-disk YAML document.
type Snapshot struct {
	ExportedAt time.Time `yaml:"exported_at"`
	Count      int       `yaml:"count"`
	States     []Record  `yaml:"states"`
}

// Record is one state row in snapshot form.
type Record struct {
	Name       string  `yaml:"name"`
	Slug       string  `yaml:"slug,omitempty"`
	Population int64   `yaml:"population"`
	Income     int64   `yaml:"income"`
	Illiteracy float64 `yaml:"illiteracy"`
	LifeExp    float64 `yaml:"life_exp"`
	Murder     float64 `yaml:"murder"`
	HSGrad     float64 `yaml:"hs_grad"`
	Frost      int64   `yaml:"frost"`
	Area       int64   `yaml:"area"`
}

// =============================================================================
// Export
// =============================================================================

// Write encodes the listing as a YAML snapshot.
func Write(w io.Writer, list []states.State) error {
	snap := Snapshot{
		ExportedAt: time.Now().UTC(),
		Count:      len(list),
		States:     make([]Record, len(list)),
	}
	for i, s := range list {
		snap.States[i] = Record{
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

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// =============================================================================
// Import
// =============================================================================

// Read decodes a YAML snapshot and validates every row. Records without a
// slug get one derived from the name.
func Read(r io.Reader) ([]states.State, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if len(snap.States) == 0 {
		return nil, ErrEmptySnapshot
	}

	list := make([]states.State, len(snap.States))
	for i, rec := range snap.States {
		slug := rec.Slug
		if slug == "" {
			slug = states.Slugify(rec.Name)
		}
		st := states.State{
			Name:       rec.Name,
			Slug:       slug,
			Population: rec.Population,
			Income:     rec.Income,
			Illiteracy: rec.Illiteracy,
			LifeExp:    rec.LifeExp,
			Murder:     rec.Murder,
			HSGrad:     rec.HSGrad,
			Frost:      rec.Frost,
			Area:       rec.Area,
		}
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("%w: state %d (%s): %v", ErrInvalidSnapshot, i, rec.Name, err)
		}
		list[i] = st
	}
	return list, nil
}

// ReadFile decodes a YAML snapshot from a file path.
func ReadFile(path string) ([]states.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Read(f)
}
