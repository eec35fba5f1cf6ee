// Package data loads the case input tables. Loaders are strict: a missing
// required column or a malformed cell aborts loading with a diagnostic naming
// the file, row, and column.
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ldes-planner/internal/model"
)

// Required generator-table columns. Column order is free; matching is by
// header name, case-insensitive.
var generatorColumns = []string{
	"resource",
	"zone",
	"stor",
	"lds",
	"self_disch",
	"eta_charge",
	"eta_discharge",
	"existing_cap_energy_mwh",
	"max_cap_energy_mwh",
}

var periodMapColumns = []string{
	"period_index",
	"rep_period",
	"rep_period_index",
}

// LoadGenerators reads the resource table (dfGen).
func LoadGenerators(path string) ([]model.Generator, error) {
	rows, idx, err := readTable(path, generatorColumns)
	if err != nil {
		return nil, err
	}
	out := make([]model.Generator, 0, len(rows))
	for i, row := range rows {
		g := model.Generator{Resource: strings.TrimSpace(row[idx["resource"]])}
		p := &rowParser{path: path, row: i + 2, cells: row, idx: idx}
		g.Zone = p.intCol("zone")
		g.Storage = p.boolCol("stor")
		g.LongDuration = p.boolCol("lds")
		g.SelfDischarge = p.floatCol("self_disch")
		g.ChargeEfficiency = p.floatCol("eta_charge")
		g.DischargeEfficiency = p.floatCol("eta_discharge")
		g.ExistingCapEnergyMWh = p.floatCol("existing_cap_energy_mwh")
		g.MaxCapEnergyMWh = p.floatCol("max_cap_energy_mwh")
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, g)
	}
	return out, nil
}

// LoadPeriodMap reads the chronological-to-representative period table.
// Rows must be in chronological order with period_index starting at 1.
func LoadPeriodMap(path string) ([]model.PeriodMapRow, error) {
	rows, idx, err := readTable(path, periodMapColumns)
	if err != nil {
		return nil, err
	}
	out := make([]model.PeriodMapRow, 0, len(rows))
	for i, row := range rows {
		p := &rowParser{path: path, row: i + 2, cells: row, idx: idx}
		r := model.PeriodMapRow{
			Period:         p.intCol("period_index"),
			Representative: p.boolCol("rep_period"),
			RepIndex:       p.intCol("rep_period_index"),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, r)
	}
	return out, nil
}

// readTable reads the whole CSV and maps required column names to positions.
func readTable(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty table", path)
	}

	idx := map[string]int{}
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%s: missing required column(s): %s", path, strings.Join(missing, ", "))
	}
	if len(records) == 1 {
		return nil, nil, fmt.Errorf("%s: table has a header but no rows", path)
	}
	return records[1:], idx, nil
}

// rowParser accumulates the first cell error for a row so callers can parse
// every column and check once.
type rowParser struct {
	path  string
	row   int
	cells []string
	idx   map[string]int
	err   error
}

func (p *rowParser) cell(col string) string {
	i := p.idx[col]
	if i >= len(p.cells) {
		p.fail(col, "missing cell")
		return ""
	}
	return strings.TrimSpace(p.cells[i])
}

func (p *rowParser) intCol(col string) int {
	s := p.cell(col)
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(col, fmt.Sprintf("not an integer: %q", s))
		return 0
	}
	return v
}

func (p *rowParser) floatCol(col string) float64 {
	s := p.cell(col)
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(col, fmt.Sprintf("not a number: %q", s))
		return 0
	}
	return v
}

// boolCol accepts 0/1 flags, the convention of the input tables.
func (p *rowParser) boolCol(col string) bool {
	s := p.cell(col)
	if p.err != nil {
		return false
	}
	switch s {
	case "0":
		return false
	case "1":
		return true
	default:
		p.fail(col, fmt.Sprintf("not a 0/1 flag: %q", s))
		return false
	}
}

func (p *rowParser) fail(col, msg string) {
	if p.err == nil {
		p.err = fmt.Errorf("%s row %d, column %s: %s", p.path, p.row, col, msg)
	}
}
