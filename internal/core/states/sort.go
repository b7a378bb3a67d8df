package states

import (
	"fmt"
	"sort"
)

// =============================================================================
// Sort Keys
// =============================================================================

// SortKey identifies a dataset column the listing can be ordered by.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPopulation SortKey = "population"
	SortByIncome     SortKey = "income"
	SortByIlliteracy SortKey = "illiteracy"
	SortByLifeExp    SortKey = "life_exp"
	SortByMurder     SortKey = "murder"
	SortByHSGrad     SortKey = "hs_grad"
	SortByFrost      SortKey = "frost"
	SortByArea       SortKey = "area"
)

// DefaultSortKey is used when no sort key is given.
const DefaultSortKey = SortByName

// SortKeys returns all valid sort keys in column display order.
func SortKeys() []SortKey {
	return []SortKey{
		SortByName,
		SortByPopulation,
		SortByIncome,
		SortByArea,
		SortByHSGrad,
		SortByMurder,
		SortByIlliteracy,
		SortByLifeExp,
		SortByFrost,
	}
}

// IsValid checks if the sort key is one of the known columns.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByPopulation, SortByIncome, SortByIlliteracy,
		SortByLifeExp, SortByMurder, SortByHSGrad, SortByFrost, SortByArea:
		return true
	default:
		return false
	}
}

// ParseSortKey validates a raw query value and returns the sort key.
// An empty value resolves to DefaultSortKey.
func ParseSortKey(raw string) (SortKey, error) {
	if raw == "" {
		return DefaultSortKey, nil
	}
	k := SortKey(raw)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, raw)
	}
	return k, nil
}

// =============================================================================
// Sorting
// =============================================================================

// Sort orders states by the given key. Name sorts ascending; every numeric
// key sorts descending (largest first) with name as the tiebreaker. The
// slice is sorted in place.
func Sort(list []State, key SortKey) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch key {
		case SortByPopulation:
			if a.Population != b.Population {
				return a.Population > b.Population
			}
		case SortByIncome:
			if a.Income != b.Income {
				return a.Income > b.Income
			}
		case SortByIlliteracy:
			if a.Illiteracy != b.Illiteracy {
				return a.Illiteracy > b.Illiteracy
			}
		case SortByLifeExp:
			if a.LifeExp != b.LifeExp {
				return a.LifeExp > b.LifeExp
			}
		case SortByMurder:
			if a.Murder != b.Murder {
				return a.Murder > b.Murder
			}
		case SortByHSGrad:
			if a.HSGrad != b.HSGrad {
				return a.HSGrad > b.HSGrad
			}
		case SortByFrost:
			if a.Frost != b.Frost {
				return a.Frost > b.Frost
			}
		case SortByArea:
			if a.Area != b.Area {
				return a.Area > b.Area
			}
		}
		return a.Name < b.Name
	})
}
