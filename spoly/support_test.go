package spoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemCycIdempotent(t *testing.T) {
	p := mkPoly(3, 14, 5, 9, 2, 3)
	once, err := RemCyc(p, bi(5))
	require.NoError(t, err)
	twice, err := RemCyc(once, bi(5))
	require.NoError(t, err)
	require.True(t, once.Equal(twice))
}

func TestEvaluateModMatchesNaive(t *testing.T) {
	p := mkPoly(3, 5, 7, 2, 1, 0)
	q := bi(1000003)
	a := bi(17)

	got := EvaluateMod(p, a, q)

	want := bi(0)
	for i := 0; i < p.Terms(); i++ {
		term, _ := p.GetTerm(i)
		pw := new(big.Int).Exp(a, term.Exp, q)
		prod := new(big.Int).Mul(term.Coeff, pw)
		want.Add(want, prod)
		want.Mod(want, q)
	}
	require.Equal(t, 0, got.Cmp(want))
}

func TestKronPackUnpackRoundTrip(t *testing.T) {
	exps := []*big.Int{bi(3), bi(7), bi(1)}
	packed := KronPack(exps, 8)
	back := KronUnpack(packed, 3, 8)
	for i := range exps {
		require.Equal(t, 0, exps[i].Cmp(back[i]))
	}
}
