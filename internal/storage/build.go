// Package storage builds the storage side of the capacity-expansion problem:
// energy-capacity sizing, the intra-period state-of-charge trajectory, and the
// inter-period accounting that lets long-duration resources carry inventory
// across representative periods.
package storage

import (
	"fmt"

	"ldes-planner/internal/model"
	"ldes-planner/internal/opt"
	"ldes-planner/internal/periods"
)

// Build runs the storage builders in dependency order: resolve the period
// map, register capacity expressions, lay down the intra-period trajectory,
// then link periods chronologically. Any failure aborts construction; the
// model must be considered unusable afterwards.
func Build(m *opt.Model, in *model.Inputs) (*periods.Mapping, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("inputs invalid: %w", err)
	}
	pm, err := periods.Resolve(in.PeriodMap, in.RepPeriods)
	if err != nil {
		return nil, fmt.Errorf("resolve period map: %w", err)
	}
	if err := BuildEnergyCapacity(m, in); err != nil {
		return nil, fmt.Errorf("energy capacity: %w", err)
	}
	if err := BuildIntraPeriod(m, in); err != nil {
		return nil, fmt.Errorf("intra-period trajectory: %w", err)
	}
	if err := BuildLongDuration(m, in, pm); err != nil {
		return nil, fmt.Errorf("long-duration accounting: %w", err)
	}
	return pm, nil
}
