package spoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranspVandermondeForwardScenario(t *testing.T) {
	p := bi(11)
	v := []*big.Int{bi(3), bi(5), bi(7)}
	x := []*big.Int{bi(1), bi(2), bi(4)}

	b := TranspVandermondeForward(v, x, 3, p)
	require.Equal(t, 0, b[0].Cmp(bi(7)))
	require.Equal(t, 0, b[1].Cmp(bi(8)))
	require.Equal(t, 0, b[2].Cmp(bi(2)))
}

func TestTranspVandermondeInverseScenario(t *testing.T) {
	p := bi(11)
	v := []*big.Int{bi(3), bi(5), bi(7)}
	b := []*big.Int{bi(7), bi(8), bi(2)}

	x, err := TranspVandermondeInverse(v, b, p)
	require.NoError(t, err)
	require.Equal(t, 0, x[0].Cmp(bi(1)))
	require.Equal(t, 0, x[1].Cmp(bi(2)))
	require.Equal(t, 0, x[2].Cmp(bi(4)))
}

func TestTranspVandermondeRoundTripInvariant(t *testing.T) {
	p := bi(1000000007)
	v := []*big.Int{bi(2), bi(3), bi(5), bi(11), bi(13)}
	x := []*big.Int{bi(9), bi(8), bi(7), bi(6), bi(5)}

	b := TranspVandermondeForward(v, x, len(v), p)
	back, err := TranspVandermondeInverse(v, b, p)
	require.NoError(t, err)
	for i := range x {
		require.Equal(t, 0, back[i].Cmp(x[i]))
	}
}
