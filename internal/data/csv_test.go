package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const goodGenerators = `resource,zone,stor,lds,self_disch,eta_charge,eta_discharge,existing_cap_energy_mwh,max_cap_energy_mwh
res_1,1,1,1,0.1,0.9,0.8,50,-1
batt_1,1,1,0,0.05,0.92,0.92,10,40
`

const goodPeriodMap = `period_index,rep_period,rep_period_index
1,1,1
2,1,2
3,0,1
`

func TestLoadGenerators(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "generators.csv", goodGenerators)

	gens, err := LoadGenerators(path)
	require.NoError(t, err)
	require.Len(t, gens, 2)

	g := gens[0]
	assert.Equal(t, "res_1", g.Resource)
	assert.Equal(t, 1, g.Zone)
	assert.True(t, g.Storage)
	assert.True(t, g.LongDuration)
	assert.InDelta(t, 0.1, g.SelfDischarge, 1e-12)
	assert.InDelta(t, 0.9, g.ChargeEfficiency, 1e-12)
	assert.InDelta(t, 0.8, g.DischargeEfficiency, 1e-12)
	assert.InDelta(t, 50.0, g.ExistingCapEnergyMWh, 1e-12)
	assert.InDelta(t, -1.0, g.MaxCapEnergyMWh, 1e-12)

	assert.False(t, gens[1].LongDuration)
}

func TestLoadGenerators_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing column",
			content: "resource,zone,stor,lds\nres_1,1,1,1\n",
			wantErr: "missing required column(s): self_disch",
		},
		{
			name:    "header only",
			content: goodGenerators[:len("resource,zone,stor,lds,self_disch,eta_charge,eta_discharge,existing_cap_energy_mwh,max_cap_energy_mwh\n")],
			wantErr: "no rows",
		},
		{
			name:    "bad flag",
			content: "resource,zone,stor,lds,self_disch,eta_charge,eta_discharge,existing_cap_energy_mwh,max_cap_energy_mwh\nres_1,1,yes,0,0,1,1,0,-1\n",
			wantErr: "not a 0/1 flag",
		},
		{
			name:    "bad number",
			content: "resource,zone,stor,lds,self_disch,eta_charge,eta_discharge,existing_cap_energy_mwh,max_cap_energy_mwh\nres_1,1,1,0,abc,1,1,0,-1\n",
			wantErr: "not a number",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name+".csv", tc.content)
			_, err := LoadGenerators(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	_, err := LoadGenerators(filepath.Join(dir, "does-not-exist.csv"))
	assert.Error(t, err)
}

func TestLoadPeriodMap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "period_map.csv", goodPeriodMap)

	rows, err := LoadPeriodMap(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Period)
	assert.True(t, rows[0].Representative)
	assert.Equal(t, 2, rows[1].RepIndex)
	assert.False(t, rows[2].Representative)
}

func TestLoadPeriodMap_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "period_index,rep_period\n1,1\n")
	_, err := LoadPeriodMap(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rep_period_index")
}
