package opt

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrices returns the dense row-per-constraint view of the model:
// A (constraints x variables), the sense of each row, and the right-hand
// vector b with each constraint's constant offset folded in, so that row i
// states A_i·x (sense_i) b_i.
func (m *Model) Matrices() (*mat.Dense, []Sense, *mat.VecDense) {
	rows, cols := len(m.cons), len(m.vars)
	if rows == 0 || cols == 0 {
		return nil, nil, nil
	}
	a := mat.NewDense(rows, cols, nil)
	b := mat.NewVecDense(rows, nil)
	senses := make([]Sense, rows)
	for i, c := range m.cons {
		for v, coeff := range c.LHS.Terms {
			a.Set(i, int(v), coeff)
		}
		b.SetVec(i, c.RHS-c.LHS.Const)
		senses[i] = c.Sense
	}
	return a, senses, b
}

// Residuals computes A·x - b for a full point x (indexed by VarID).
// Equality rows are satisfied at zero; LE rows at <= 0; GE rows at >= 0.
func (m *Model) Residuals(x []float64) (*mat.VecDense, error) {
	if len(x) != len(m.vars) {
		return nil, fmt.Errorf("point has %d entries, model has %d variables", len(x), len(m.vars))
	}
	a, _, b := m.Matrices()
	if a == nil {
		return nil, nil
	}
	var ax mat.VecDense
	ax.MulVec(a, mat.NewVecDense(len(x), x))
	var r mat.VecDense
	r.SubVec(&ax, b)
	return &r, nil
}
