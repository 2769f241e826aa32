package spoly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/rand"
)

func TestBPInterpScenarioS2(t *testing.T) {
	rng := rand.New()
	p := mkPoly(1, 0, 1, 1, 1, 2) // 1 + x + x^2

	basis, status := BPBasisInit(rng, Basis{Terms: 3, DegreeBits: 2, HeightBits: 1})
	require.Equal(t, StatusOK, status)

	evals := BPEval(basis, p)
	got, status := BPInterp(basis, evals)
	require.Equal(t, StatusOK, status)
	require.True(t, got.Equal(p))
}
