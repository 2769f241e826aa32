package densepoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func bi(n int64) *big.Int { return big.NewInt(n) }

func TestModArithmetic(t *testing.T) {
	p := bi(101)
	a := FromBigInts(p, []*big.Int{bi(1), bi(2), bi(3)}) // 3x^2+2x+1
	b := FromBigInts(p, []*big.Int{bi(5), bi(7)})        // 7x+5

	sum := a.Add(b)
	require.Equal(t, 0, sum.Coeff(0).Cmp(bi(6)))
	require.Equal(t, 0, sum.Coeff(1).Cmp(bi(9)))
	require.Equal(t, 0, sum.Coeff(2).Cmp(bi(3)))

	prod := a.Mul(b)
	// (3x^2+2x+1)(7x+5) = 21x^3 + 15x^2 + 14x^2 + 10x + 7x + 5
	//                   = 21x^3 + 29x^2 + 17x + 5
	require.Equal(t, 3, prod.Degree())
	require.Equal(t, 0, prod.Coeff(0).Cmp(bi(5)))
	require.Equal(t, 0, prod.Coeff(1).Cmp(bi(17)))
	require.Equal(t, 0, prod.Coeff(2).Cmp(bi(29)))
	require.Equal(t, 0, prod.Coeff(3).Cmp(bi(21)))
}

func TestModDivRemAndGcd(t *testing.T) {
	p := bi(101)
	// f = (x-2)(x-3) = x^2 -5x + 6
	f := FromBigInts(p, []*big.Int{bi(6), bi(-5), bi(1)})
	// g = (x-2)(x-7) = x^2 -9x + 14
	g := FromBigInts(p, []*big.Int{bi(14), bi(-9), bi(1)})

	gcd := f.Gcd(g)
	require.Equal(t, 1, gcd.Degree())
	// monic gcd should be (x - 2 mod 101) = x + 99
	root := new(big.Int).Neg(gcd.Coeff(0))
	root.Mod(root, p)
	require.Equal(t, 0, root.Cmp(bi(2)))

	q, r := f.DivRem(FromBigInts(p, []*big.Int{bi(-2), bi(1)}))
	require.True(t, r.IsZero())
	require.Equal(t, 0, q.Coeff(0).Cmp(bi(-3).Mod(bi(-3), p)))
}

func TestMinPolyRecoversLinearRecurrence(t *testing.T) {
	p := bi(10007)
	// sequence b[i] = 2*3^i + 5*4^i mod p has minpoly (x-3)(x-4) = x^2-7x+12
	seq := make([]*big.Int, 8)
	three, four := bi(1), bi(1)
	for i := range seq {
		t1 := new(big.Int).Mul(bi(2), three)
		t2 := new(big.Int).Mul(bi(5), four)
		v := new(big.Int).Add(t1, t2)
		v.Mod(v, p)
		seq[i] = v
		three.Mul(three, bi(3))
		three.Mod(three, p)
		four.Mul(four, bi(4))
		four.Mod(four, p)
	}

	mp := MinPoly(p, seq)
	require.Equal(t, 2, mp.Degree())
	require.Equal(t, 0, mp.Coeff(2).Cmp(bi(1)))
	require.Equal(t, 0, mp.Coeff(1).Cmp(new(big.Int).Mod(bi(-7), p)))
	require.Equal(t, 0, mp.Coeff(0).Cmp(bi(12)))
}

func TestEvaluateAndDerivative(t *testing.T) {
	p := bi(1000000007)
	m := FromBigInts(p, []*big.Int{bi(1), bi(0), bi(1)}) // x^2+1
	require.Equal(t, 0, m.Evaluate(bi(3)).Cmp(bi(10)))

	d := m.Derivative()
	require.Equal(t, 1, d.Degree())
	require.Equal(t, 0, d.Coeff(1).Cmp(bi(2)))
}

func TestZRoundTripAndReduce(t *testing.T) {
	z := ZFromBigInts([]*big.Int{bi(100), bi(-5), bi(2)})
	require.Equal(t, 2, z.Degree())
	require.Equal(t, 0, z.Evaluate(bi(10)).Cmp(bi(100-50+200)))

	reduced := z.Reduce(bi(7))
	require.Equal(t, 0, reduced.Coeff(0).Cmp(new(big.Int).Mod(bi(100), bi(7))))
}
