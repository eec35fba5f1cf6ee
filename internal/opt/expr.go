package opt

import "fmt"

// Expr is an affine expression over model variables: sum(coeff_i * x_i) + Const.
// Expressions are built incrementally by the model builders and are immutable
// once attached to a constraint or registered on the model.
type Expr struct {
	Terms map[VarID]float64
	Const float64
}

func NewExpr() *Expr {
	return &Expr{Terms: map[VarID]float64{}}
}

// AddTerm accumulates coeff onto the coefficient of v.
func (e *Expr) AddTerm(v VarID, coeff float64) *Expr {
	e.Terms[v] += coeff
	return e
}

// AddConst accumulates c onto the constant.
func (e *Expr) AddConst(c float64) *Expr {
	e.Const += c
	return e
}

// AddExpr accumulates scale*o onto e.
func (e *Expr) AddExpr(o *Expr, scale float64) *Expr {
	for v, c := range o.Terms {
		e.Terms[v] += scale * c
	}
	e.Const += scale * o.Const
	return e
}

// Clone returns an independent copy.
func (e *Expr) Clone() *Expr {
	out := &Expr{Terms: make(map[VarID]float64, len(e.Terms)), Const: e.Const}
	for v, c := range e.Terms {
		out.Terms[v] = c
	}
	return out
}

// Eval computes the expression value at a full point, indexed by VarID.
func (e *Expr) Eval(x []float64) (float64, error) {
	total := e.Const
	for v, c := range e.Terms {
		if int(v) < 0 || int(v) >= len(x) {
			return 0, fmt.Errorf("point has %d entries, expression references variable %d", len(x), v)
		}
		total += c * x[int(v)]
	}
	return total, nil
}
