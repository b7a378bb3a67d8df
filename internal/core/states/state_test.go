package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NewState / Validate Tests
// =============================================================================

func TestNewState_DerivesSlug(t *testing.T) {
	s, err := NewState("New Hampshire", 812, 4281, 0.7, 71.23, 3.3, 57.6, 174, 9027)
	require.NoError(t, err)
	assert.Equal(t, "new-hampshire", s.Slug)
}

func TestNewState_EmptyName(t *testing.T) {
	_, err := NewState("", 1, 1, 0, 0, 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestNewState_NegativeValue(t *testing.T) {
	_, err := NewState("Nowhere", -1, 1, 0, 0, 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestValidate_SlugMismatch(t *testing.T) {
	s := State{Name: "Texas", Slug: "taxes"}
	err := s.Validate()
	assert.ErrorIs(t, err, ErrSlugMismatch)
}

// =============================================================================
// Slugify Tests
// =============================================================================

func TestSlugify_SingleWord(t *testing.T) {
	assert.Equal(t, "texas", Slugify("Texas"))
}

func TestSlugify_TwoWords(t *testing.T) {
	assert.Equal(t, "rhode-island", Slugify("Rhode Island"))
}

func TestSlugify_DropsPunctuation(t *testing.T) {
	assert.Equal(t, "washington-dc", Slugify("Washington, D.C."))
}
