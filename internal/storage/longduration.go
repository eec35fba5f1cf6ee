package storage

import (
	"errors"
	"fmt"

	"ldes-planner/internal/model"
	"ldes-planner/internal/opt"
	"ldes-planner/internal/periods"
)

// BuildLongDuration assembles the inter-period inventory accounting for every
// long-duration storage resource. It reconciles two time representations: the
// representative periods simulated hour by hour (vS), and the chronological
// periods of the full annual sequence, which only carry a start-of-period
// inventory level (vSOCw). The bridge is vdSOC[y,w], the net inventory change
// a resource accrues over representative period w; the chronological ledger
// reuses that one delta for every period mapped to w.
//
// Families written:
//
//	vSOCw[y,n] >= 0   inventory at the start of chronological period n
//	vdSOC[y,w]  free  net inventory change over representative period w
//	cStart[y,w]       links each representative period's first hour to its
//	                  last hour net of the period's delta (replaces the
//	                  short-duration wrap)
//	cInterior[y,n]    vSOCw[n+1] = vSOCw[n] + vdSOC[f(n)], n < N
//	cEnd[y]           vSOCw[1] = vSOCw[N] + vdSOC[f(N)] (cycle closure)
//	cUpper[y,n]       vSOCw[n] <= eTotalCapEnergy[y]
//	cSub[y,n]         vSOCw[n] = vS[last hour of f(n)] - vdSOC[f(n)], n in REP
//
// BuildEnergyCapacity and BuildIntraPeriod must have run on the model first;
// a missing trajectory variable or capacity expression aborts construction.
func BuildLongDuration(m *opt.Model, in *model.Inputs, pm *periods.Mapping) error {
	lds := in.LongDurationSet()
	if len(lds) == 0 {
		return errors.New("no long-duration storage resources in generator table")
	}
	if pm.RepPeriods != in.RepPeriods {
		return fmt.Errorf("period map resolved %d representative periods, inputs declare %d", pm.RepPeriods, in.RepPeriods)
	}

	for _, y := range lds {
		g := in.Generators[y]
		for n := 1; n <= pm.Periods; n++ {
			if _, err := m.NewNonNegVar(opt.Indexed(VarSOCStart, g.Resource, n)); err != nil {
				return fmt.Errorf("declare start-of-period inventory for %s: %w", g.Resource, err)
			}
		}
		for w := 1; w <= pm.RepPeriods; w++ {
			if _, err := m.NewFreeVar(opt.Indexed(VarDelta, g.Resource, w)); err != nil {
				return fmt.Errorf("declare inter-period delta for %s: %w", g.Resource, err)
			}
		}
	}

	for _, y := range lds {
		g := in.Generators[y]
		if err := buildStartLinks(m, in, g); err != nil {
			return fmt.Errorf("start-linking constraints for %s: %w", g.Resource, err)
		}
		if err := buildChronologicalLedger(m, pm, g); err != nil {
			return fmt.Errorf("chronological ledger for %s: %w", g.Resource, err)
		}
		if err := buildConsistency(m, in, pm, g); err != nil {
			return fmt.Errorf("representative-consistency constraints for %s: %w", g.Resource, err)
		}
	}
	return nil
}

// buildStartLinks adds cStart[y,w] for every representative period:
//
//	vS[first] = (1-nu)*(vS[last] - vdSOC[w]) - (1/etaDis)*vP[first] + etaCh*vCHARGE[first]
//
// The delta is an adjustable unknown, so the optimizer decides how much
// inventory effectively flows across the period boundary instead of being
// forced to wrap to the same level.
func buildStartLinks(m *opt.Model, in *model.Inputs, g model.Generator) error {
	keep := 1 - g.SelfDischarge
	for w := 1; w <= in.RepPeriods; w++ {
		first, last := periods.HourRange(w, in.HoursPerSubperiod)
		sFirst, err := m.Var(opt.Indexed(VarSOC, g.Resource, first))
		if err != nil {
			return fmt.Errorf("intra-period trajectory not built: %w", err)
		}
		sLast, err := m.Var(opt.Indexed(VarSOC, g.Resource, last))
		if err != nil {
			return err
		}
		p, err := m.Var(opt.Indexed(VarDischarge, g.Resource, first))
		if err != nil {
			return err
		}
		ch, err := m.Var(opt.Indexed(VarCharge, g.Resource, first))
		if err != nil {
			return err
		}
		delta, err := m.Var(opt.Indexed(VarDelta, g.Resource, w))
		if err != nil {
			return err
		}
		lhs := opt.NewExpr().
			AddTerm(sFirst, 1).
			AddTerm(sLast, -keep).
			AddTerm(delta, keep).
			AddTerm(p, 1/g.DischargeEfficiency).
			AddTerm(ch, -g.ChargeEfficiency)
		if err := m.AddConstraint(opt.Indexed("cStart", g.Resource, w), lhs, opt.SenseEq, 0); err != nil {
			return err
		}
	}
	return nil
}

// buildChronologicalLedger adds the recurrence over the real annual sequence
// (cInterior), its cyclic closure (cEnd), and the capacity cap on every
// start-of-period level (cUpper).
func buildChronologicalLedger(m *opt.Model, pm *periods.Mapping, g model.Generator) error {
	socStart := func(n int) (opt.VarID, error) {
		return m.Var(opt.Indexed(VarSOCStart, g.Resource, n))
	}
	deltaFor := func(n int) (opt.VarID, error) {
		w, err := pm.Rep(n)
		if err != nil {
			return 0, err
		}
		return m.Var(opt.Indexed(VarDelta, g.Resource, w))
	}

	for n := 1; n < pm.Periods; n++ {
		cur, err := socStart(n)
		if err != nil {
			return err
		}
		next, err := socStart(n + 1)
		if err != nil {
			return err
		}
		delta, err := deltaFor(n)
		if err != nil {
			return err
		}
		lhs := opt.NewExpr().AddTerm(next, 1).AddTerm(cur, -1).AddTerm(delta, -1)
		if err := m.AddConstraint(opt.Indexed("cInterior", g.Resource, n), lhs, opt.SenseEq, 0); err != nil {
			return err
		}
	}

	firstPeriod, err := socStart(1)
	if err != nil {
		return err
	}
	lastPeriod, err := socStart(pm.Periods)
	if err != nil {
		return err
	}
	lastDelta, err := deltaFor(pm.Periods)
	if err != nil {
		return err
	}
	lhs := opt.NewExpr().AddTerm(firstPeriod, 1).AddTerm(lastPeriod, -1).AddTerm(lastDelta, -1)
	if err := m.AddConstraint(opt.Indexed("cEnd", g.Resource), lhs, opt.SenseEq, 0); err != nil {
		return err
	}

	capEnergy, err := m.Expr(TotalCapEnergyName(g.Resource))
	if err != nil {
		return fmt.Errorf("total-capacity expression not built: %w", err)
	}
	for n := 1; n <= pm.Periods; n++ {
		s, err := socStart(n)
		if err != nil {
			return err
		}
		upper := opt.NewExpr().AddTerm(s, 1).AddExpr(capEnergy, -1)
		if err := m.AddConstraint(opt.Indexed("cUpper", g.Resource, n), upper, opt.SenseLE, 0); err != nil {
			return err
		}
	}
	return nil
}

// buildConsistency adds cSub[y,n] for every chronological period that is its
// own representative: the ledger's start-of-period level must equal the level
// implied by the period's simulated trajectory, pinning the two bookkeeping
// systems together where they must agree.
func buildConsistency(m *opt.Model, in *model.Inputs, pm *periods.Mapping, g model.Generator) error {
	for _, n := range pm.RepSet {
		w, err := pm.Rep(n)
		if err != nil {
			return err
		}
		_, last := periods.HourRange(w, in.HoursPerSubperiod)
		socStart, err := m.Var(opt.Indexed(VarSOCStart, g.Resource, n))
		if err != nil {
			return err
		}
		sLast, err := m.Var(opt.Indexed(VarSOC, g.Resource, last))
		if err != nil {
			return fmt.Errorf("intra-period trajectory not built: %w", err)
		}
		delta, err := m.Var(opt.Indexed(VarDelta, g.Resource, w))
		if err != nil {
			return err
		}
		lhs := opt.NewExpr().AddTerm(socStart, 1).AddTerm(sLast, -1).AddTerm(delta, 1)
		if err := m.AddConstraint(opt.Indexed("cSub", g.Resource, n), lhs, opt.SenseEq, 0); err != nil {
			return err
		}
	}
	return nil
}
