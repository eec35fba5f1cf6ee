package storage

import (
	"errors"
	"fmt"

	"ldes-planner/internal/model"
	"ldes-planner/internal/opt"
	"ldes-planner/internal/periods"
)

// StartPolicy selects how a resource's state of charge at the first hour of
// each representative period is pinned down. The variant is chosen once per
// resource at construction time.
type StartPolicy int

const (
	// StartPolicyWrap closes each representative period on itself: the hour
	// before the first hour is the period's own last hour.
	StartPolicyWrap StartPolicy = iota
	// StartPolicyLongDuration leaves the start hour to the inter-period
	// builder, which links it through the period's net inventory change.
	StartPolicyLongDuration
)

// StartPolicyFor picks the formulation variant for a resource.
func StartPolicyFor(g model.Generator) StartPolicy {
	if g.LongDuration {
		return StartPolicyLongDuration
	}
	return StartPolicyWrap
}

// BuildIntraPeriod declares the hour-by-hour trajectory for every storage
// resource — vS[y,t], vCHARGE[y,t], vP[y,t] over the concatenated simulated
// hours — and ties consecutive hours together with the SOC balance:
//
//	vS[t] = (1 - selfDisch)*vS[t-1] - (1/etaDis)*vP[t] + etaCh*vCHARGE[t]
//
// For StartPolicyWrap resources the balance also wraps each representative
// period's first hour onto its last. Every hour's inventory is capped by the
// resource's total energy capacity (cSoCMax).
//
// BuildEnergyCapacity must have run on the model first.
func BuildIntraPeriod(m *opt.Model, in *model.Inputs) error {
	storage := in.StorageSet()
	if len(storage) == 0 {
		return errors.New("no storage resources in generator table")
	}

	for _, y := range storage {
		g := in.Generators[y]
		for t := 1; t <= in.Timesteps; t++ {
			for _, fam := range []string{VarSOC, VarCharge, VarDischarge} {
				if _, err := m.NewNonNegVar(opt.Indexed(fam, g.Resource, t)); err != nil {
					return fmt.Errorf("declare trajectory variables for %s: %w", g.Resource, err)
				}
			}
		}
	}

	for _, y := range storage {
		g := in.Generators[y]
		if err := buildTrajectory(m, in, g); err != nil {
			return fmt.Errorf("intra-period trajectory for %s: %w", g.Resource, err)
		}
	}
	return nil
}

func buildTrajectory(m *opt.Model, in *model.Inputs, g model.Generator) error {
	policy := StartPolicyFor(g)
	keep := 1 - g.SelfDischarge

	for w := 1; w <= in.RepPeriods; w++ {
		first, last := periods.HourRange(w, in.HoursPerSubperiod)
		for t := first + 1; t <= last; t++ {
			lhs, err := socBalanceLHS(m, g, t, t-1, keep)
			if err != nil {
				return err
			}
			if err := m.AddConstraint(opt.Indexed("cSoCBalInterior", g.Resource, t), lhs, opt.SenseEq, 0); err != nil {
				return err
			}
		}
		if policy == StartPolicyWrap {
			lhs, err := socBalanceLHS(m, g, first, last, keep)
			if err != nil {
				return err
			}
			if err := m.AddConstraint(opt.Indexed("cSoCBalStart", g.Resource, w), lhs, opt.SenseEq, 0); err != nil {
				return err
			}
		}
	}

	capEnergy, err := m.Expr(TotalCapEnergyName(g.Resource))
	if err != nil {
		return fmt.Errorf("total-capacity expression not built: %w", err)
	}
	for t := 1; t <= in.Timesteps; t++ {
		s, err := m.Var(opt.Indexed(VarSOC, g.Resource, t))
		if err != nil {
			return err
		}
		lhs := opt.NewExpr().AddTerm(s, 1).AddExpr(capEnergy, -1)
		if err := m.AddConstraint(opt.Indexed("cSoCMax", g.Resource, t), lhs, opt.SenseLE, 0); err != nil {
			return err
		}
	}
	return nil
}

// socBalanceLHS builds vS[t] - keep*vS[prev] + (1/etaDis)*vP[t] - etaCh*vCHARGE[t],
// to be constrained equal to zero.
func socBalanceLHS(m *opt.Model, g model.Generator, t, prev int, keep float64) (*opt.Expr, error) {
	s, err := m.Var(opt.Indexed(VarSOC, g.Resource, t))
	if err != nil {
		return nil, err
	}
	sPrev, err := m.Var(opt.Indexed(VarSOC, g.Resource, prev))
	if err != nil {
		return nil, err
	}
	p, err := m.Var(opt.Indexed(VarDischarge, g.Resource, t))
	if err != nil {
		return nil, err
	}
	ch, err := m.Var(opt.Indexed(VarCharge, g.Resource, t))
	if err != nil {
		return nil, err
	}
	lhs := opt.NewExpr().
		AddTerm(s, 1).
		AddTerm(sPrev, -keep).
		AddTerm(p, 1/g.DischargeEfficiency).
		AddTerm(ch, -g.ChargeEfficiency)
	return lhs, nil
}
