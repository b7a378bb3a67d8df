package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

// =============================================================================
// Round-Trip Tests
// =============================================================================

func TestWriteRead_RoundTrip(t *testing.T) {
	list := []states.State{
		{Name: "Iowa", Slug: "iowa", Population: 2861, Income: 4628, Illiteracy: 0.5, LifeExp: 72.56, Murder: 2.3, HSGrad: 59.0, Frost: 140, Area: 55941},
		{Name: "New Hampshire", Slug: "new-hampshire", Population: 812, Income: 4281, Illiteracy: 0.7, LifeExp: 71.23, Murder: 3.3, HSGrad: 57.6, Frost: 174, Area: 9027},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, list))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

// =============================================================================
// Read Tests
// =============================================================================

func TestRead_DerivesMissingSlug(t *testing.T) {
	doc := `
states:
  - name: Rhode Island
    population: 931
    income: 4558
    illiteracy: 1.3
    life_exp: 71.9
    murder: 2.4
    hs_grad: 46.4
    frost: 127
    area: 1049
`
	got, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rhode-island", got[0].Slug)
}

func TestRead_EmptySnapshot(t *testing.T) {
	_, err := Read(strings.NewReader("states: []\n"))
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestRead_NotYAML(t *testing.T) {
	_, err := Read(strings.NewReader("{not yaml: ["))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRead_RejectsInvalidState(t *testing.T) {
	doc := `
states:
  - name: ""
    population: 100
`
	_, err := Read(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRead_RejectsNegativeValues(t *testing.T) {
	doc := `
states:
  - name: Nowhere
    population: -5
`
	_, err := Read(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

// =============================================================================
// File Tests
// =============================================================================

func TestReadFile(t *testing.T) {
	list := []states.State{{Name: "Texas", Slug: "texas", Population: 12237, Income: 4188, Illiteracy: 2.2, LifeExp: 70.90, Murder: 12.2, HSGrad: 47.4, Frost: 35, Area: 262134}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, list))

	path := filepath.Join(t.TempDir(), "states.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
