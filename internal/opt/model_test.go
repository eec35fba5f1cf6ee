package opt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_DuplicateDeclarations(t *testing.T) {
	m := New()

	_, err := m.NewNonNegVar("vS[a,1]")
	require.NoError(t, err)

	_, err = m.NewNonNegVar("vS[a,1]")
	assert.ErrorIs(t, err, ErrDuplicateVariable)

	id, err := m.NewFreeVar("vdSOC[a,1]")
	require.NoError(t, err)

	lhs := NewExpr().AddTerm(id, 1)
	require.NoError(t, m.AddConstraint("cEnd[a]", lhs, SenseEq, 0))
	assert.ErrorIs(t, m.AddConstraint("cEnd[a]", lhs, SenseEq, 0), ErrDuplicateConstraint)

	require.NoError(t, m.SetExpr("eTotalCapEnergy[a]", NewExpr().AddConst(5)))
	assert.ErrorIs(t, m.SetExpr("eTotalCapEnergy[a]", NewExpr()), ErrDuplicateExpression)
}

func TestModel_UnknownLookups(t *testing.T) {
	m := New()
	_, err := m.Var("vS[missing,1]")
	assert.ErrorIs(t, err, ErrUnknownVariable)

	_, err = m.Expr("eTotalCapEnergy[missing]")
	assert.ErrorIs(t, err, ErrUnknownExpression)
}

func TestModel_VarBounds(t *testing.T) {
	m := New()
	_, err := m.NewVar("bad", 2, 1)
	assert.Error(t, err)

	id, err := m.NewFreeVar("free")
	require.NoError(t, err)
	v, err := m.VarByID(id)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.Lower, -1))
	assert.True(t, math.IsInf(v.Upper, 1))
}

func TestExpr_Accumulation(t *testing.T) {
	m := New()
	a, _ := m.NewNonNegVar("a")
	b, _ := m.NewNonNegVar("b")

	e := NewExpr().AddTerm(a, 2).AddTerm(b, -1).AddConst(3)
	e.AddExpr(NewExpr().AddTerm(a, 1).AddConst(1), 2)

	assert.InDelta(t, 4.0, e.Terms[a], 1e-12)
	assert.InDelta(t, -1.0, e.Terms[b], 1e-12)
	assert.InDelta(t, 5.0, e.Const, 1e-12)

	val, err := e.Eval([]float64{1.5, 2})
	require.NoError(t, err)
	assert.InDelta(t, 4*1.5-2+5, val, 1e-12)

	_, err = e.Eval([]float64{1.5})
	assert.Error(t, err)
}

func TestModel_MatricesAndResiduals(t *testing.T) {
	m := New()
	a, _ := m.NewNonNegVar("a")
	b, _ := m.NewNonNegVar("b")

	// a + 2b + 1 == 4  and  a - b <= 0
	require.NoError(t, m.AddConstraint("eq", NewExpr().AddTerm(a, 1).AddTerm(b, 2).AddConst(1), SenseEq, 4))
	require.NoError(t, m.AddConstraint("le", NewExpr().AddTerm(a, 1).AddTerm(b, -1), SenseLE, 0))

	amat, senses, bvec := m.Matrices()
	require.NotNil(t, amat)
	rows, cols := amat.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []Sense{SenseEq, SenseLE}, senses)
	// Constant folded into rhs: 4 - 1 = 3.
	assert.InDelta(t, 3.0, bvec.AtVec(0), 1e-12)

	res, err := m.Residuals([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.AtVec(0), 1e-12) // 1 + 2 - 3
	assert.InDelta(t, 0.0, res.AtVec(1), 1e-12)

	_, err = m.Residuals([]float64{1})
	assert.Error(t, err)
}

func TestFamilyCensus(t *testing.T) {
	m := New()
	for _, name := range []string{"vS[a,1]", "vS[a,2]", "vdSOC[a,1]"} {
		_, err := m.NewNonNegVar(name)
		require.NoError(t, err)
	}
	id, _ := m.Var("vS[a,1]")
	require.NoError(t, m.AddConstraint("cSub[a,1]", NewExpr().AddTerm(id, 1), SenseEq, 0))

	census := m.FamilyCensus()
	require.Len(t, census, 3)
	assert.Equal(t, FamilyCount{Name: "cSub", Kind: "constraint", Count: 1}, census[0])
	assert.Equal(t, FamilyCount{Name: "vS", Kind: "variable", Count: 2}, census[1])
	assert.Equal(t, FamilyCount{Name: "vdSOC", Kind: "variable", Count: 1}, census[2])
}

func TestIndexed(t *testing.T) {
	assert.Equal(t, "vSOCw[battery_1,3]", Indexed("vSOCw", "battery_1", 3))
	assert.Equal(t, "cEnd[x]", Indexed("cEnd", "x"))
}
