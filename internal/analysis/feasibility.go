// Package analysis provides read-only checks over a constructed model. It
// never mutates the model; it exists so tests and callers can verify that a
// fixed assignment respects the constraint families before any solver runs.
package analysis

import (
	"fmt"
	"math"

	"ldes-planner/internal/opt"
)

// Violation is one failed bound or constraint at the checked point.
type Violation struct {
	Kind  string  `json:"kind"` // "bound" or "constraint"
	Name  string  `json:"name"`
	Value float64 `json:"value"` // evaluated left-hand side (or variable value)
	Limit float64 `json:"limit"` // the bound or right-hand side it violates
	Gap   float64 `json:"gap"`   // how far past the limit, always > tol
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s: value %g violates limit %g (gap %g)", v.Kind, v.Name, v.Value, v.Limit, v.Gap)
}

// Report summarizes a feasibility check.
type Report struct {
	Checked    int         `json:"checked"`
	Skipped    int         `json:"skipped"`
	Violations []Violation `json:"violations"`
}

func (r *Report) Feasible() bool { return len(r.Violations) == 0 }

// CheckAssignment checks a partial point given as variable-name -> value.
// Bounds are checked for every assigned variable; a constraint is checked only
// when all of its variables are assigned, otherwise it is counted as skipped.
// Naming a variable the model never declared is an error, not a skip.
func CheckAssignment(m *opt.Model, assign map[string]float64, tol float64) (*Report, error) {
	if tol < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0, got %g", tol)
	}
	values := make(map[opt.VarID]float64, len(assign))
	rep := &Report{}
	for name, val := range assign {
		id, err := m.Var(name)
		if err != nil {
			return nil, err
		}
		values[id] = val
		v, err := m.VarByID(id)
		if err != nil {
			return nil, err
		}
		rep.Checked++
		checkBound(rep, v, val, tol)
	}

	for _, c := range m.Constraints() {
		lhs := c.LHS.Const
		complete := true
		for id, coeff := range c.LHS.Terms {
			val, ok := values[id]
			if !ok {
				complete = false
				break
			}
			lhs += coeff * val
		}
		if !complete {
			rep.Skipped++
			continue
		}
		rep.Checked++
		checkConstraint(rep, c.Name, lhs, c.Sense, c.RHS, tol)
	}
	return rep, nil
}

// CheckPoint checks a complete point indexed by VarID, using the dense
// residual view of the model.
func CheckPoint(m *opt.Model, x []float64, tol float64) (*Report, error) {
	if tol < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0, got %g", tol)
	}
	if len(x) != m.NumVars() {
		return nil, fmt.Errorf("point has %d entries, model has %d variables", len(x), m.NumVars())
	}
	rep := &Report{}
	for _, v := range m.Vars() {
		rep.Checked++
		checkBound(rep, v, x[int(v.ID)], tol)
	}

	res, err := m.Residuals(x)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return rep, nil
	}
	cons := m.Constraints()
	for i, c := range cons {
		rep.Checked++
		// Residual is LHS - RHS with the constant folded in.
		checkConstraint(rep, c.Name, c.RHS+res.AtVec(i), c.Sense, c.RHS, tol)
	}
	return rep, nil
}

func checkBound(rep *Report, v opt.Var, val, tol float64) {
	if val < v.Lower-tol {
		rep.Violations = append(rep.Violations, Violation{
			Kind: "bound", Name: v.Name, Value: val, Limit: v.Lower, Gap: v.Lower - val,
		})
	}
	if val > v.Upper+tol {
		rep.Violations = append(rep.Violations, Violation{
			Kind: "bound", Name: v.Name, Value: val, Limit: v.Upper, Gap: val - v.Upper,
		})
	}
}

func checkConstraint(rep *Report, name string, lhs float64, sense opt.Sense, rhs, tol float64) {
	var gap float64
	switch sense {
	case opt.SenseEq:
		gap = math.Abs(lhs - rhs)
	case opt.SenseLE:
		gap = lhs - rhs
	case opt.SenseGE:
		gap = rhs - lhs
	}
	if gap > tol {
		rep.Violations = append(rep.Violations, Violation{
			Kind: "constraint", Name: name, Value: lhs, Limit: rhs, Gap: gap,
		})
	}
}
