package spoly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/rand"
)

func TestRandtestShapeInvariants(t *testing.T) {
	rng := rand.New()
	p := Randtest(rng, 5, bi(1000), 8, false)
	require.Equal(t, 5, p.Terms())
	for i := 0; i < p.Terms(); i++ {
		term, _ := p.GetTerm(i)
		require.True(t, term.Exp.Sign() >= 0)
		require.True(t, term.Exp.Cmp(bi(1000)) < 0)
		require.NotEqual(t, 0, term.Coeff.Sign())
	}
}

func TestRandtestLaurentAllowsNegativeExponents(t *testing.T) {
	rng := rand.New()
	p := Randtest(rng, 20, bi(50), 4, true)
	sawNegative := false
	for i := 0; i < p.Terms(); i++ {
		term, _ := p.GetTerm(i)
		if term.Exp.Sign() < 0 {
			sawNegative = true
		}
	}
	require.True(t, sawNegative)
}

func TestRandtestKronPacksDistinctVariables(t *testing.T) {
	rng := rand.New()
	p := RandtestKron(rng, 6, bi(16), 6, 3)
	require.Equal(t, 6, p.Terms())
	for i := 0; i < p.Terms(); i++ {
		term, _ := p.GetTerm(i)
		unpacked := KronUnpack(term.Exp, 3, uint(bi(16).BitLen()))
		for _, e := range unpacked {
			require.True(t, e.Sign() >= 0)
			require.True(t, e.Cmp(bi(16)) < 0)
		}
	}
}
