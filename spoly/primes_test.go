package spoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/rand"
)

func TestBPBasisInitProperties(t *testing.T) {
	rng := rand.New()
	basis, status := BPBasisInit(rng, Basis{Terms: 3, DegreeBits: 4, HeightBits: 3})
	require.Equal(t, StatusOK, status)

	q := basis.Q.Big()
	require.True(t, basis.Q.ProbablyPrime(30))

	// q - 1 must be divisible by 2^k.
	qm1 := new(big.Int).Sub(q, big.NewInt(1))
	twoK := new(big.Int).Lsh(big.NewInt(1), basis.K)
	rem := new(big.Int).Mod(qm1, twoK)
	require.Equal(t, 0, rem.Sign())

	// w must have exact order 2^k: w^(2^(k-1)) == -1 mod q.
	half := new(big.Int).Lsh(big.NewInt(1), basis.K-1)
	check := new(big.Int).Exp(basis.W.Big(), half, q)
	negOne := new(big.Int).Sub(q, big.NewInt(1))
	require.Equal(t, 0, check.Cmp(negOne))
}

func TestSPBasisInitRegimes(t *testing.T) {
	empty := SPBasisInit(Basis{Terms: 0, DegreeBits: 10, HeightBits: 4}, 30)
	require.Equal(t, SPEmpty, empty.Regime)

	dense := SPBasisInit(Basis{Terms: 3, DegreeBits: 2, HeightBits: 4}, 30)
	require.Equal(t, SPDense, dense.Regime)
	require.Equal(t, 1, dense.NumRounds)

	general := SPBasisInit(Basis{Terms: 3, DegreeBits: 40, HeightBits: 4}, 30)
	require.Equal(t, SPGeneral, general.Regime)
	require.True(t, general.NumRounds >= 1)
}

func TestDefaultSPBasisInitUsesArchWordBits(t *testing.T) {
	basis := DefaultSPBasisInit(Basis{Terms: 3, DegreeBits: 2, HeightBits: 4})
	require.Equal(t, SPDense, basis.Regime)
	require.True(t, basis.CoefPrimeBits == 61 || basis.CoefPrimeBits == 30)
}

func TestPrimRootsAccumulatesBits(t *testing.T) {
	rng := rand.New()
	qs, ws, status := PrimRoots(rng, 16, 48, 64)
	require.Equal(t, StatusOK, status)
	require.Equal(t, len(qs), len(ws))

	accBits := 0
	for i, q := range qs {
		require.True(t, q.ProbablyPrime(30))
		w := ws[i].Big()
		require.True(t, w.Cmp(big.NewInt(1)) > 0)
		accBits += q.BitLen()
	}
	require.True(t, accBits >= 48)
}
