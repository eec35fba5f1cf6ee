package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ldes-planner/internal/analysis"
	"ldes-planner/internal/config"
	"ldes-planner/internal/data"
	"ldes-planner/internal/opt"
	"ldes-planner/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "build":
		cmdBuild(os.Args[2:])
	case "check":
		cmdCheck(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli build --config examples/threeperiod/case.yaml [--out results/matrix.csv]")
	fmt.Println("  cli check --config examples/threeperiod/case.yaml --assignment point.csv [--tol 1e-6]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - build constructs the storage planning model and prints a per-family census")
	fmt.Println("  - check evaluates a fixed assignment (CSV: name,value) against the built model")
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML case config")
	outPath := fs.String("out", "", "Optional: write constraint matrix triplets to CSV")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	m, _, err := buildCase(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("model: %d variables, %d constraints\n", m.NumVars(), m.NumConstraints())
	for _, fc := range m.FamilyCensus() {
		fmt.Printf("  %-18s %-10s %d\n", fc.Name, fc.Kind, fc.Count)
	}

	if *outPath != "" {
		if err := writeMatrixCSV(*outPath, m); err != nil {
			fmt.Fprintf(os.Stderr, "write matrix: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *outPath)
	}
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML case config")
	assignPath := fs.String("assignment", "", "Path to assignment CSV (name,value)")
	tol := fs.Float64("tol", 1e-6, "Feasibility tolerance")
	_ = fs.Parse(args)

	if *cfgPath == "" || *assignPath == "" {
		fmt.Println("--config and --assignment are required")
		os.Exit(2)
	}

	m, _, err := buildCase(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	assign, err := loadAssignment(*assignPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rep, err := analysis.CheckAssignment(m, assign, *tol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("checked %d, skipped %d\n", rep.Checked, rep.Skipped)
	if rep.Feasible() {
		fmt.Println("assignment is feasible for all checked constraints")
		return
	}
	for _, v := range rep.Violations {
		fmt.Println(" ", v)
	}
	os.Exit(1)
}

func buildCase(cfgPath string) (*opt.Model, int, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, 0, err
	}
	in, err := data.LoadCase(cfg)
	if err != nil {
		return nil, 0, err
	}
	m := opt.New()
	pm, err := storage.Build(m, in)
	if err != nil {
		return nil, 0, err
	}
	fmt.Printf("case %s: %d chronological periods, %d representative\n", in.CaseName, pm.Periods, pm.RepPeriods)
	return m, pm.Periods, nil
}

// writeMatrixCSV exports the model in triplet form: one row per nonzero
// coefficient, plus the sense and right-hand side repeated per row.
func writeMatrixCSV(path string, m *opt.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"constraint", "variable", "coefficient", "sense", "rhs"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range m.Constraints() {
		for id, coeff := range c.LHS.Terms {
			v, err := m.VarByID(id)
			if err != nil {
				return err
			}
			row := []string{
				c.Name,
				v.Name,
				strconv.FormatFloat(coeff, 'f', 6, 64),
				c.Sense.String(),
				strconv.FormatFloat(c.RHS-c.LHS.Const, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func loadAssignment(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := map[string]float64{}
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%s row %d: want name,value", path, i+1)
		}
		name := strings.TrimSpace(rec[0])
		if i == 0 && strings.EqualFold(name, "name") {
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: not a number: %q", path, i+1, rec[1])
		}
		out[name] = val
	}
	return out, nil
}
