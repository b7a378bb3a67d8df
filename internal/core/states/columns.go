package states

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Column Metadata
// =============================================================================

// Column describes how a dataset column is labeled and formatted for display.
type Column struct {
	Key   SortKey `json:"key"`
	Label string  `json:"label"`
	Help  string  `json:"help"`
}

// Columns returns the column metadata in display order.
func Columns() []Column {
	return []Column{
		{Key: SortByName, Label: "State Name", Help: "The name of the U.S. state."},
		{Key: SortByPopulation, Label: "Population", Help: "Estimated population in 1975 (thousands)."},
		{Key: SortByIncome, Label: "Income", Help: "Per capita income in 1974."},
		{Key: SortByArea, Label: "Area (sq. mi)", Help: "Land area in square miles."},
		{Key: SortByHSGrad, Label: "HS Grad (%)", Help: "Percent of high-school graduates in 1970."},
		{Key: SortByMurder, Label: "Murder Rate", Help: "Murder and non-negligent manslaughter rate per 100,000 population in 1976."},
		{Key: SortByIlliteracy, Label: "Illiteracy (%)", Help: "Illiteracy rate in 1970 (percent of population)."},
		{Key: SortByLifeExp, Label: "Life Exp. (yrs)", Help: "Life expectancy in years (1969-71)."},
		{Key: SortByFrost, Label: "Frost Days", Help: "Mean number of days with minimum temperature below freezing (1931-1960) in capital or large city."},
	}
}

// Label returns the display label for a sort key, or the key itself if the
// key is unknown.
func Label(key SortKey) string {
	for _, c := range Columns() {
		if c.Key == key {
			return c.Label
		}
	}
	return string(key)
}

// =============================================================================
// Display Formatting
// =============================================================================

// FormatValue renders a state's column value the way the table displays it:
// whole numbers with thousands separators, income with a dollar sign,
// percentages with a trailing percent sign, rates with two decimals.
func FormatValue(s State, key SortKey) string {
	switch key {
	case SortByName:
		return s.Name
	case SortByPopulation:
		return groupThousands(s.Population)
	case SortByIncome:
		return "$" + groupThousands(s.Income)
	case SortByArea:
		return groupThousands(s.Area)
	case SortByFrost:
		return strconv.FormatInt(s.Frost, 10)
	case SortByIlliteracy:
		return fmt.Sprintf("%.2f%%", s.Illiteracy)
	case SortByHSGrad:
		return fmt.Sprintf("%.1f%%", s.HSGrad)
	case SortByLifeExp:
		return fmt.Sprintf("%.2f", s.LifeExp)
	case SortByMurder:
		return fmt.Sprintf("%.2f", s.Murder)
	default:
		return ""
	}
}

// groupThousands formats n with comma separators.
func groupThousands(n int64) string {
	raw := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}
	var b strings.Builder
	for i, d := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
