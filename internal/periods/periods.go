// Package periods resolves the mapping between the chronological periods of
// the annual sequence and the representative periods used for hourly
// simulation.
package periods

import (
	"errors"
	"fmt"

	"ldes-planner/internal/model"
)

// Mapping is the resolved period map. RepIndex is keyed by chronological
// period (1-based), so RepIndex[n-1] is f(n) in 1..RepPeriods. RepSet lists,
// in ascending order, the chronological periods that are themselves
// representative.
type Mapping struct {
	Periods    int // N
	RepPeriods int // W
	RepIndex   []int
	RepSet     []int

	repByOrdinal []int // ordinal w -> chronological period, 1-based
}

// Resolve validates the raw period-map rows against the declared
// representative-period count and produces the forward mapping.
//
// The map must be surjective (every ordinal 1..W appears) and reflexive on
// representatives (each ordinal is claimed by exactly one period that is
// flagged representative and maps to itself).
func Resolve(rows []model.PeriodMapRow, repPeriods int) (*Mapping, error) {
	if len(rows) == 0 {
		return nil, errors.New("period map is empty")
	}
	if repPeriods < 1 {
		return nil, errors.New("representative-period count must be >= 1")
	}
	n := len(rows)
	if n < repPeriods {
		return nil, fmt.Errorf("period map has %d rows, fewer than %d representative periods", n, repPeriods)
	}

	m := &Mapping{
		Periods:      n,
		RepPeriods:   repPeriods,
		RepIndex:     make([]int, n),
		repByOrdinal: make([]int, repPeriods+1),
	}
	for i, row := range rows {
		if row.Period != i+1 {
			return nil, fmt.Errorf("period map row %d: period index %d out of order", i, row.Period)
		}
		if row.RepIndex < 1 || row.RepIndex > repPeriods {
			return nil, fmt.Errorf("period %d: representative index %d out of range 1..%d", row.Period, row.RepIndex, repPeriods)
		}
		m.RepIndex[i] = row.RepIndex
		if row.Representative {
			if prev := m.repByOrdinal[row.RepIndex]; prev != 0 {
				return nil, fmt.Errorf("representative period %d claimed by both period %d and period %d", row.RepIndex, prev, row.Period)
			}
			m.repByOrdinal[row.RepIndex] = row.Period
			m.RepSet = append(m.RepSet, row.Period)
		}
	}
	for w := 1; w <= repPeriods; w++ {
		if m.repByOrdinal[w] == 0 {
			return nil, fmt.Errorf("representative period %d has no chronological period flagged as itself", w)
		}
	}
	return m, nil
}

// Rep returns f(n), the representative-period ordinal approximating
// chronological period n (1-based).
func (m *Mapping) Rep(n int) (int, error) {
	if n < 1 || n > m.Periods {
		return 0, fmt.Errorf("chronological period %d out of range 1..%d", n, m.Periods)
	}
	return m.RepIndex[n-1], nil
}

// IsRep reports whether chronological period n is itself representative.
func (m *Mapping) IsRep(n int) bool {
	if n < 1 || n > m.Periods {
		return false
	}
	for _, r := range m.RepSet {
		if r == n {
			return true
		}
	}
	return false
}

// HourRange gives the first and last simulated hour (1-based, inclusive) of
// representative period w when subperiods of hoursPerSubperiod hours are
// concatenated.
func HourRange(w, hoursPerSubperiod int) (first, last int) {
	first = hoursPerSubperiod*(w-1) + 1
	last = hoursPerSubperiod * w
	return first, last
}
