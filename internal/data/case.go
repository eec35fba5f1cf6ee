package data

import (
	"fmt"

	"ldes-planner/internal/config"
	"ldes-planner/internal/model"
)

// LoadCase assembles and validates the full inputs object for a case config.
func LoadCase(cfg *config.Config) (*model.Inputs, error) {
	gens, err := LoadGenerators(cfg.Case.GeneratorsFile)
	if err != nil {
		return nil, fmt.Errorf("load generators: %w", err)
	}
	pmap, err := LoadPeriodMap(cfg.Case.PeriodMapFile)
	if err != nil {
		return nil, fmt.Errorf("load period map: %w", err)
	}
	in := &model.Inputs{
		CaseName:          cfg.Case.Name,
		Generators:        gens,
		Timesteps:         cfg.Case.Timesteps,
		Zones:             cfg.Case.Zones,
		RepPeriods:        cfg.Case.RepPeriods,
		HoursPerSubperiod: cfg.Case.HoursPerSubperiod,
		PeriodMap:         pmap,
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("inputs invalid: %w", err)
	}
	return in, nil
}
