package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk case configuration shape (YAML).
type Config struct {
	Case CaseConfig `yaml:"case"`
}

// CaseConfig names the input tables and declares the time-structure scalars
// that the tables are checked against.
type CaseConfig struct {
	Name string `yaml:"name"`

	GeneratorsFile string `yaml:"generators_file"`
	PeriodMapFile  string `yaml:"period_map_file"`

	Timesteps         int `yaml:"timesteps"`
	Zones             int `yaml:"zones"`
	RepPeriods        int `yaml:"rep_periods"`
	HoursPerSubperiod int `yaml:"hours_per_subperiod"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s invalid: %w", path, err)
	}
	return c, nil
}

// LoadUnchecked loads the config and resolves table paths, but does not
// validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// Interpret relative table paths as relative to the config file directory.
	dir := filepath.Dir(path)
	c.Case.GeneratorsFile = resolve(dir, c.Case.GeneratorsFile)
	c.Case.PeriodMapFile = resolve(dir, c.Case.PeriodMapFile)
	return &c, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	cc := c.Case
	if cc.Name == "" {
		return errors.New("case.name is required")
	}
	if cc.GeneratorsFile == "" {
		return errors.New("case.generators_file is required")
	}
	if cc.PeriodMapFile == "" {
		return errors.New("case.period_map_file is required")
	}
	if cc.Zones < 1 {
		return errors.New("case.zones must be >= 1")
	}
	if cc.RepPeriods < 1 {
		return errors.New("case.rep_periods must be >= 1")
	}
	if cc.HoursPerSubperiod < 1 {
		return errors.New("case.hours_per_subperiod must be >= 1")
	}
	if cc.Timesteps != cc.RepPeriods*cc.HoursPerSubperiod {
		return fmt.Errorf("case.timesteps (%d) must equal rep_periods*hours_per_subperiod (%d*%d)",
			cc.Timesteps, cc.RepPeriods, cc.HoursPerSubperiod)
	}
	return nil
}
