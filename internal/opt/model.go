package opt

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Package opt holds the shared optimization-problem object that the builder
// modules append to. It only represents the problem: variables with bounds,
// named linear constraints, and named shared expressions. Solving is someone
// else's job.

var (
	ErrDuplicateVariable   = errors.New("variable already declared")
	ErrDuplicateConstraint = errors.New("constraint already declared")
	ErrDuplicateExpression = errors.New("expression already registered")
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrUnknownExpression   = errors.New("unknown expression")
)

// VarID is the position of a variable in the model's variable vector.
type VarID int

// Var is a decision variable with inclusive bounds. Free variables use
// -Inf/+Inf.
type Var struct {
	ID    VarID
	Name  string
	Lower float64
	Upper float64
}

// Sense relates a constraint's left-hand expression to its right-hand value.
type Sense int

const (
	SenseEq Sense = iota
	SenseLE
	SenseGE
)

func (s Sense) String() string {
	switch s {
	case SenseEq:
		return "=="
	case SenseLE:
		return "<="
	case SenseGE:
		return ">="
	}
	return "?"
}

// Constraint is LHS (sense) RHS. The LHS carries any constant offset.
type Constraint struct {
	Name  string
	LHS   *Expr
	Sense Sense
	RHS   float64
}

// Model is the shared, mutable problem under construction. It is exclusively
// owned by the orchestrating caller while builders run; there is no locking.
type Model struct {
	vars     []Var
	varIndex map[string]VarID

	cons     []Constraint
	conIndex map[string]int

	exprs map[string]*Expr
}

func New() *Model {
	return &Model{
		varIndex: map[string]VarID{},
		conIndex: map[string]int{},
		exprs:    map[string]*Expr{},
	}
}

// NewVar declares a bounded variable. Redeclaring a name is a programming
// error and fails loudly with ErrDuplicateVariable.
func (m *Model) NewVar(name string, lower, upper float64) (VarID, error) {
	if name == "" {
		return 0, errors.New("variable name is empty")
	}
	if lower > upper {
		return 0, fmt.Errorf("variable %s: lower bound %v exceeds upper bound %v", name, lower, upper)
	}
	if _, ok := m.varIndex[name]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateVariable, name)
	}
	id := VarID(len(m.vars))
	m.vars = append(m.vars, Var{ID: id, Name: name, Lower: lower, Upper: upper})
	m.varIndex[name] = id
	return id, nil
}

// NewNonNegVar declares a variable on [0, +Inf).
func (m *Model) NewNonNegVar(name string) (VarID, error) {
	return m.NewVar(name, 0, math.Inf(1))
}

// NewFreeVar declares a variable on (-Inf, +Inf).
func (m *Model) NewFreeVar(name string) (VarID, error) {
	return m.NewVar(name, math.Inf(-1), math.Inf(1))
}

// Var resolves a declared variable by name.
func (m *Model) Var(name string) (VarID, error) {
	id, ok := m.varIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	return id, nil
}

// HasVar reports whether name is declared.
func (m *Model) HasVar(name string) bool {
	_, ok := m.varIndex[name]
	return ok
}

// VarByID returns the variable record for id.
func (m *Model) VarByID(id VarID) (Var, error) {
	if int(id) < 0 || int(id) >= len(m.vars) {
		return Var{}, fmt.Errorf("%w: id %d", ErrUnknownVariable, id)
	}
	return m.vars[int(id)], nil
}

// Vars returns the variable vector in declaration order.
func (m *Model) Vars() []Var {
	out := make([]Var, len(m.vars))
	copy(out, m.vars)
	return out
}

func (m *Model) NumVars() int        { return len(m.vars) }
func (m *Model) NumConstraints() int { return len(m.cons) }

// AddConstraint appends a named constraint. Names must be unique across the
// whole model; a clash means two builders wrote into the same namespace.
func (m *Model) AddConstraint(name string, lhs *Expr, sense Sense, rhs float64) error {
	if name == "" {
		return errors.New("constraint name is empty")
	}
	if lhs == nil {
		return fmt.Errorf("constraint %s: nil expression", name)
	}
	if _, ok := m.conIndex[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateConstraint, name)
	}
	m.conIndex[name] = len(m.cons)
	m.cons = append(m.cons, Constraint{Name: name, LHS: lhs, Sense: sense, RHS: rhs})
	return nil
}

// Constraint resolves a constraint by name.
func (m *Model) Constraint(name string) (Constraint, bool) {
	i, ok := m.conIndex[name]
	if !ok {
		return Constraint{}, false
	}
	return m.cons[i], true
}

// Constraints returns all constraints in insertion order.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.cons))
	copy(out, m.cons)
	return out
}

// SetExpr registers a named shared expression (e.g. a total-capacity
// expression) for downstream builders to consume read-only.
func (m *Model) SetExpr(name string, e *Expr) error {
	if name == "" {
		return errors.New("expression name is empty")
	}
	if e == nil {
		return fmt.Errorf("expression %s: nil expression", name)
	}
	if _, ok := m.exprs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateExpression, name)
	}
	m.exprs[name] = e
	return nil
}

// Expr resolves a registered shared expression by name.
func (m *Model) Expr(name string) (*Expr, error) {
	e, ok := m.exprs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExpression, name)
	}
	return e, nil
}

// FamilyCensus counts variables and constraints per family, where the family
// is the name up to the first '['. Families come back sorted by name.
func (m *Model) FamilyCensus() []FamilyCount {
	counts := map[string]*FamilyCount{}
	bump := func(name, kind string) {
		fam := name
		if i := strings.IndexByte(name, '['); i >= 0 {
			fam = name[:i]
		}
		fc, ok := counts[fam]
		if !ok {
			fc = &FamilyCount{Name: fam, Kind: kind}
			counts[fam] = fc
		}
		fc.Count++
	}
	for _, v := range m.vars {
		bump(v.Name, "variable")
	}
	for _, c := range m.cons {
		bump(c.Name, "constraint")
	}
	out := make([]FamilyCount, 0, len(counts))
	for _, fc := range counts {
		out = append(out, *fc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FamilyCount is one row of the model census.
type FamilyCount struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Indexed renders a family name with bracketed indices, e.g.
// Indexed("vSOCw", "battery_1", 3) -> "vSOCw[battery_1,3]".
func Indexed(family string, parts ...any) string {
	var b strings.Builder
	b.WriteString(family)
	b.WriteByte('[')
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprint(&b, p)
	}
	b.WriteByte(']')
	return b.String()
}
