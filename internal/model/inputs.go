package model

import (
	"errors"
	"fmt"
)

// PeriodMapRow is one row of the period map: for a chronological period,
// whether the period is itself representative and the ordinal (1..W) of the
// representative period that approximates it.
type PeriodMapRow struct {
	Period         int
	Representative bool
	RepIndex       int
}

// Inputs is the canonical "inputs to the system" object: every field the
// builders need, enumerated explicitly and validated up front. It is never
// mutated after loading.
type Inputs struct {
	CaseName string

	Generators []Generator

	// Timesteps is the concatenated simulated-hour count T; it must equal
	// RepPeriods * HoursPerSubperiod.
	Timesteps         int
	Zones             int
	RepPeriods        int
	HoursPerSubperiod int

	// PeriodMap has one row per chronological period, in order.
	PeriodMap []PeriodMapRow
}

func (in *Inputs) Validate() error {
	if in == nil {
		return errors.New("inputs are nil")
	}
	if len(in.Generators) == 0 {
		return errors.New("generator table is empty")
	}
	if in.Zones < 1 {
		return errors.New("Zones must be >= 1")
	}
	if in.RepPeriods < 1 {
		return errors.New("RepPeriods must be >= 1")
	}
	if in.HoursPerSubperiod < 1 {
		return errors.New("HoursPerSubperiod must be >= 1")
	}
	if in.Timesteps != in.RepPeriods*in.HoursPerSubperiod {
		return fmt.Errorf("Timesteps (%d) must equal RepPeriods*HoursPerSubperiod (%d*%d)",
			in.Timesteps, in.RepPeriods, in.HoursPerSubperiod)
	}
	if len(in.PeriodMap) < in.RepPeriods {
		return fmt.Errorf("period map has %d rows, fewer than the %d representative periods", len(in.PeriodMap), in.RepPeriods)
	}
	seen := map[string]bool{}
	for i, g := range in.Generators {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("generator %d (%s): %w", i, g.Resource, err)
		}
		if g.Zone > in.Zones {
			return fmt.Errorf("generator %s: zone %d out of range 1..%d", g.Resource, g.Zone, in.Zones)
		}
		if seen[g.Resource] {
			return fmt.Errorf("duplicate resource id %q", g.Resource)
		}
		seen[g.Resource] = true
	}
	return nil
}

// StorageSet returns the indices of storage resources, in table order.
func (in *Inputs) StorageSet() []int {
	var out []int
	for i, g := range in.Generators {
		if g.Storage {
			out = append(out, i)
		}
	}
	return out
}

// LongDurationSet returns the indices of resources enrolled in inter-period
// accounting, in table order.
func (in *Inputs) LongDurationSet() []int {
	var out []int
	for i, g := range in.Generators {
		if g.LongDuration {
			out = append(out, i)
		}
	}
	return out
}
