package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodConfig = `case:
  name: threeperiod
  generators_file: generators.csv
  period_map_file: tables/period_map.csv
  timesteps: 4
  zones: 1
  rep_periods: 2
  hours_per_subperiod: 2
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(goodConfig), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "threeperiod", c.Case.Name)
	// Relative paths resolve against the config directory.
	assert.Equal(t, filepath.Join(dir, "generators.csv"), c.Case.GeneratorsFile)
	assert.Equal(t, filepath.Join(dir, "tables", "period_map.csv"), c.Case.PeriodMapFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := CaseConfig{
		Name:              "x",
		GeneratorsFile:    "g.csv",
		PeriodMapFile:     "p.csv",
		Timesteps:         4,
		Zones:             1,
		RepPeriods:        2,
		HoursPerSubperiod: 2,
	}

	tests := []struct {
		name    string
		mutate  func(*CaseConfig)
		wantErr string
	}{
		{"valid", func(c *CaseConfig) {}, ""},
		{"missing name", func(c *CaseConfig) { c.Name = "" }, "case.name"},
		{"missing generators", func(c *CaseConfig) { c.GeneratorsFile = "" }, "generators_file"},
		{"missing period map", func(c *CaseConfig) { c.PeriodMapFile = "" }, "period_map_file"},
		{"zero zones", func(c *CaseConfig) { c.Zones = 0 }, "zones"},
		{"timesteps mismatch", func(c *CaseConfig) { c.Timesteps = 5 }, "timesteps"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := base
			tc.mutate(&cc)
			err := (&Config{Case: cc}).Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
