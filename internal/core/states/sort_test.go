package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

func sampleStates() []State {
	return []State{
		{Name: "Iowa", Slug: "iowa", Population: 2861, Income: 4628, Illiteracy: 0.5, LifeExp: 72.56, Murder: 2.3, HSGrad: 59.0, Frost: 140, Area: 55941},
		{Name: "Alabama", Slug: "alabama", Population: 3615, Income: 3624, Illiteracy: 2.1, LifeExp: 69.05, Murder: 15.1, HSGrad: 41.3, Frost: 20, Area: 50708},
		{Name: "California", Slug: "california", Population: 21198, Income: 5114, Illiteracy: 1.1, LifeExp: 71.71, Murder: 10.3, HSGrad: 62.6, Frost: 20, Area: 156361},
		{Name: "Nevada", Slug: "nevada", Population: 590, Income: 5149, Illiteracy: 0.5, LifeExp: 69.03, Murder: 11.5, HSGrad: 65.2, Frost: 188, Area: 109889},
	}
}

// =============================================================================
// ParseSortKey Tests
// =============================================================================

func TestParseSortKey_Empty(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByName, key)
}

func TestParseSortKey_Valid(t *testing.T) {
	for _, k := range SortKeys() {
		key, err := ParseSortKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, key)
	}
}

func TestParseSortKey_Invalid(t *testing.T) {
	_, err := ParseSortKey("population; DROP TABLE states")
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

// =============================================================================
// Sort Tests
// =============================================================================

func TestSort_ByNameAscending(t *testing.T) {
	list := sampleStates()
	Sort(list, SortByName)

	assert.Equal(t, "Alabama", list[0].Name)
	assert.Equal(t, "California", list[1].Name)
	assert.Equal(t, "Iowa", list[2].Name)
	assert.Equal(t, "Nevada", list[3].Name)
}

func TestSort_ByPopulationDescending(t *testing.T) {
	list := sampleStates()
	Sort(list, SortByPopulation)

	assert.Equal(t, "California", list[0].Name)
	assert.Equal(t, "Nevada", list[3].Name)
}

func TestSort_ByMurderDescending(t *testing.T) {
	list := sampleStates()
	Sort(list, SortByMurder)

	assert.Equal(t, "Alabama", list[0].Name)
	assert.Equal(t, "Iowa", list[3].Name)
}

func TestSort_TiesBreakOnName(t *testing.T) {
	// Iowa and Nevada share the same illiteracy rate.
	list := sampleStates()
	Sort(list, SortByIlliteracy)

	assert.Equal(t, "Alabama", list[0].Name)
	assert.Equal(t, "California", list[1].Name)
	assert.Equal(t, "Iowa", list[2].Name)
	assert.Equal(t, "Nevada", list[3].Name)
}

// =============================================================================
// Formatting Tests
// =============================================================================

func TestFormatValue_Income(t *testing.T) {
	s := sampleStates()[2] // California
	assert.Equal(t, "$5,114", FormatValue(s, SortByIncome))
}

func TestFormatValue_Population(t *testing.T) {
	s := sampleStates()[2]
	assert.Equal(t, "21,198", FormatValue(s, SortByPopulation))
}

func TestFormatValue_Percentages(t *testing.T) {
	s := sampleStates()[0] // Iowa
	assert.Equal(t, "0.50%", FormatValue(s, SortByIlliteracy))
	assert.Equal(t, "59.0%", FormatValue(s, SortByHSGrad))
}

func TestFormatValue_TwoDecimalRates(t *testing.T) {
	s := sampleStates()[0]
	assert.Equal(t, "72.56", FormatValue(s, SortByLifeExp))
	assert.Equal(t, "2.30", FormatValue(s, SortByMurder))
}

func TestFormatValue_Frost(t *testing.T) {
	s := sampleStates()[0]
	assert.Equal(t, "140", FormatValue(s, SortByFrost))
}

func TestColumns_CoverEverySortKey(t *testing.T) {
	cols := Columns()
	require.Len(t, cols, len(SortKeys()))
	for i, k := range SortKeys() {
		assert.Equal(t, k, cols[i].Key)
	}
}
