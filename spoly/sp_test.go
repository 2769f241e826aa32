package spoly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/rand"
)

func TestSPInterpScenarioS3(t *testing.T) {
	rng := rand.New()
	p := mkPoly(1, 1000, 1, 0) // x^1000 + 1

	basis := SPBasisInit(Basis{Terms: 2, DegreeBits: 10, HeightBits: 1}, 30)
	require.NotEqual(t, SPEmpty, basis.Regime)

	ev, err := SPEvalRun(rng, basis, p)
	require.NoError(t, err)
	got, status := SPInterp(basis, ev)
	require.Equal(t, StatusOK, status)
	require.True(t, got.Equal(p))
}
