package spoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/densepoly"
)

func TestBinaryRootsRecoversKnownFactors(t *testing.T) {
	// p = 11, theta = 2 has order 10 (2^1=2,...); use a small prime
	// where theta generates a group of order 2^k exactly.
	p := bi(17) // group order 16 = 2^4
	theta := bi(3)
	var k uint = 4

	// f(x) = (x - theta^1)(x - theta^3) mod p, roots theta^1, theta^3
	r1 := new(big.Int).Exp(theta, bi(1), p)
	r3 := new(big.Int).Exp(theta, bi(3), p)
	f := densepoly.FromBigInts(p, []*big.Int{
		new(big.Int).Mod(new(big.Int).Mul(r1, r3), p),
		new(big.Int).Mod(new(big.Int).Neg(new(big.Int).Add(r1, r3)), p),
		bi(1),
	})

	roots := BinaryRoots(f, theta, k, p)
	require.Len(t, roots, 2)
	for _, r := range roots {
		// invariant 12: f(r) == 0 and theta^log == r mod p
		require.Equal(t, 0, f.Evaluate(r.Value).Cmp(bi(0)))
		check := new(big.Int).Exp(theta, new(big.Int).SetUint64(r.Log), p)
		require.Equal(t, 0, check.Cmp(r.Value))
	}
}
