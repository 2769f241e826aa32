package spoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/rand"
)

func TestMulOSScenarioS1(t *testing.T) {
	rng := rand.New()
	f := mkPoly(20, 4913, 65, 3631, 16, 2520, 26, 1238)
	g := mkPoly(60, 4316, -48, 1923, 78, 641)

	h, status := MulOS(rng, f, g)
	require.Equal(t, StatusOK, status)
	// 12 products, but exponents 5554, 6836 and 3161 each arise from
	// several pairs whose coefficients cancel, leaving 5 terms.
	require.Equal(t, 5, h.Terms())

	require.Equal(t, 0, h.GetCoeff(bi(7947)).Cmp(bi(3900)))
	require.Equal(t, 0, h.GetCoeff(bi(4443)).Cmp(bi(-768)))
}

func TestMulAgreesWithMulOS(t *testing.T) {
	rng := rand.New()
	f := mkPoly(3, 10, -2, 4, 1, 0)
	g := mkPoly(5, 6, 7, 1)

	expected := bruteMul(f, g)
	got, status := MulOS(rng, f, g)
	require.Equal(t, StatusOK, status)
	require.True(t, got.Equal(expected))
}

// bruteMul computes f*g by brute-force term expansion, used as the
// reference in invariant 8 ("mul(f,g) = mul_OS(f,g)").
func bruteMul(f, g *Poly) *Poly {
	out := New(0, false)
	for i := 0; i < f.Terms(); i++ {
		ft, _ := f.GetTerm(i)
		for j := 0; j < g.Terms(); j++ {
			gt, _ := g.GetTerm(j)
			coeff := new(big.Int).Mul(ft.Coeff, gt.Coeff)
			exp := new(big.Int).Add(ft.Exp, gt.Exp)
			mono := New(1, false)
			_ = mono.SetCoeff(coeff, exp)
			out.ScalarAddmul(mono, big.NewInt(1))
		}
	}
	out.normaliseSelf()
	return out
}
