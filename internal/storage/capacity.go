package storage

import (
	"errors"
	"fmt"
	"math"

	"ldes-planner/internal/model"
	"ldes-planner/internal/opt"
)

// Variable and expression family names produced by the storage builders.
// Downstream modules look these up on the shared model by name.
const (
	VarCapEnergy = "vCAPENERGY"
	VarSOC       = "vS"
	VarCharge    = "vCHARGE"
	VarDischarge = "vP"
	VarSOCStart  = "vSOCw"
	VarDelta     = "vdSOC"

	ExprTotalCapEnergy = "eTotalCapEnergy"
)

// TotalCapEnergyName is the shared-expression key for a resource's installed
// energy capacity.
func TotalCapEnergyName(resource string) string {
	return opt.Indexed(ExprTotalCapEnergy, resource)
}

// BuildEnergyCapacity declares the energy-capacity build variable for every
// storage resource and registers eTotalCapEnergy[y] = existing + new build.
// Other builders consume the expression read-only.
func BuildEnergyCapacity(m *opt.Model, in *model.Inputs) error {
	storage := in.StorageSet()
	if len(storage) == 0 {
		return errors.New("no storage resources in generator table")
	}
	for _, y := range storage {
		g := in.Generators[y]
		upper := math.Inf(1)
		if g.MaxCapEnergyMWh >= 0 {
			upper = g.MaxCapEnergyMWh - g.ExistingCapEnergyMWh
		}
		id, err := m.NewVar(opt.Indexed(VarCapEnergy, g.Resource), 0, upper)
		if err != nil {
			return fmt.Errorf("declare energy-capacity variable for %s: %w", g.Resource, err)
		}
		e := opt.NewExpr().AddConst(g.ExistingCapEnergyMWh).AddTerm(id, 1)
		if err := m.SetExpr(TotalCapEnergyName(g.Resource), e); err != nil {
			return fmt.Errorf("register total-capacity expression for %s: %w", g.Resource, err)
		}
	}
	return nil
}
