package spoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func bi(n int64) *big.Int { return big.NewInt(n) }

func mkPoly(pairs ...int64) *Poly {
	p := New(len(pairs)/2, false)
	for i := 0; i < len(pairs); i += 2 {
		_ = p.SetCoeff(bi(pairs[i]), bi(pairs[i+1]))
	}
	return p
}

func TestNormaliseInvariants(t *testing.T) {
	terms := []Term{
		{Coeff: bi(3), Exp: bi(2)},
		{Coeff: bi(-3), Exp: bi(2)}, // cancels
		{Coeff: bi(5), Exp: bi(7)},
		{Coeff: bi(2), Exp: bi(7)}, // combines to 7
		{Coeff: bi(1), Exp: bi(0)},
	}
	out := Normalise(terms)
	require.Len(t, out, 2)
	require.Equal(t, 0, out[0].Exp.Cmp(bi(7)))
	require.Equal(t, 0, out[0].Coeff.Cmp(bi(7)))
	require.Equal(t, 0, out[1].Exp.Cmp(bi(0)))

	// idempotent (invariant 4)
	again := Normalise(out)
	require.Equal(t, len(out), len(again))
}

func TestAddSubRoundTrip(t *testing.T) {
	p := mkPoly(1, 5, 2, 3, 3, 0)
	q := mkPoly(7, 5, -2, 1)

	var sum, back Poly
	sum.Add(p, q)
	back.Sub(&sum, q)
	require.True(t, back.Equal(p))

	var back2 Poly
	var diff Poly
	diff.Sub(p, q)
	back2.Add(&diff, q)
	require.True(t, back2.Equal(p))
}

func TestShiftLeftExact(t *testing.T) {
	p := mkPoly(1, 5, 2, 3)
	var shifted Poly
	require.NoError(t, shifted.ShiftLeft(p, bi(10)))
	for i := 0; i < shifted.Terms(); i++ {
		st, _ := shifted.GetTerm(i)
		ot, _ := p.GetTerm(i)
		require.Equal(t, 0, st.Exp.Cmp(new(big.Int).Add(ot.Exp, bi(10))))
		require.Equal(t, 0, st.Coeff.Cmp(ot.Coeff))
	}
}

func TestDenseRoundTrip(t *testing.T) {
	p := mkPoly(100, 3, -5, 1, 2, 0)
	dense, err := p.ToDense()
	require.NoError(t, err)
	back := FromDense(dense)
	require.True(t, back.Equal(p))
}

func TestDenseRejectsHugeDegree(t *testing.T) {
	p := New(1, false)
	huge := new(big.Int).Lsh(big.NewInt(1), 40)
	_ = p.SetCoeff(bi(1), huge)
	_, err := p.ToDense()
	require.Error(t, err)
}

func TestNegativeExponentRejectedOnNonLaurent(t *testing.T) {
	p := New(1, false)
	err := p.SetCoeff(bi(1), bi(-1))
	require.Error(t, err)

	lp := New(1, true)
	require.NoError(t, lp.SetCoeff(bi(1), bi(-1)))
}

func TestGetCoeffBinarySearch(t *testing.T) {
	p := mkPoly(10, 5, 20, 3, 30, 1)
	require.Equal(t, 0, p.GetCoeff(bi(3)).Cmp(bi(20)))
	require.Equal(t, 0, p.GetCoeff(bi(99)).Cmp(bi(0)))
}
