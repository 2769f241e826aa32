package spoly

import (
	"math/big"

	"github.com/dsroche/spoly/densepoly"
)

// Root pairs a recovered root with its discrete log base the generator
// passed to BinaryRoots.
type Root struct {
	Value *big.Int
	Log   uint64
}

// BinaryRoots implements the power-of-generator root finder (spec.md
// section 4.4): given a monic f of degree n over Z/pZ, a generator
// theta of multiplicative order 2^k, and the promise that f splits
// completely into distinct linear factors whose roots are powers of
// theta, returns each root together with its discrete log base theta.
//
// Grounded on
// original_source/fmpz_spoly/bp_interp.c's _fmpz_mod_poly_binary_roots:
// recursive even/odd split via gcd with x^{2^{k-1}} - 1.
func BinaryRoots(f *densepoly.Mod, theta *big.Int, k uint, p *big.Int) []Root {
	return binaryRootsRec(f, theta, k, p)
}

func binaryRootsRec(f *densepoly.Mod, theta *big.Int, k uint, p *big.Int) []Root {
	n := f.Degree()
	if n <= 0 {
		return nil
	}
	order := uint64(1) << k
	if uint64(n) >= order {
		// every power of theta is a root (the promise guarantees this).
		roots := make([]Root, order)
		pw := big.NewInt(1)
		for i := uint64(0); i < order; i++ {
			roots[i] = Root{Value: new(big.Int).Set(pw), Log: i}
			pw.Mul(pw, theta)
			pw.Mod(pw, p)
		}
		return roots
	}

	// g(x) = gcd(f(x), x^{2^{k-1}} - 1) mod p: the even-power-root factor.
	// x^{2^{k-1}} is never materialized directly (it would need degree
	// 2^{k-1}, astronomically large for the degrees this core targets);
	// instead x^{2^{k-1}} mod f is computed by repeated squaring of x
	// modulo f, and gcd(f, x^{2^{k-1}}-1) = gcd(f, (x^{2^{k-1}} mod f)-1)
	// since the two differ by a multiple of f.
	half := uint64(1) << (k - 1)
	xToHalfModF := xPowModF(f, half, p)
	one := densepoly.FromBigInts(p, []*big.Int{big.NewInt(1)})
	g := f.Gcd(xToHalfModF.Sub(one))

	var evenRoots []Root
	if g.Degree() > 0 {
		theta2 := new(big.Int).Mul(theta, theta)
		theta2.Mod(theta2, p)
		sub := binaryRootsRec(g, theta2, k-1, p)
		evenRoots = make([]Root, len(sub))
		for i, r := range sub {
			evenRoots[i] = Root{Value: r.Value, Log: 2 * r.Log}
		}
	}

	// f/g has only odd-power roots; substitute x <- theta*x then
	// normalize to monic, turning odd powers into even powers, recurse,
	// then undo the substitution.
	var oddRoots []Root
	fOverG, rem := f.DivRem(g)
	if !rem.IsZero() {
		panic("spoly: BinaryRoots: g does not divide f exactly")
	}
	if fOverG.Degree() > 0 {
		shifted := substituteThetaX(fOverG, theta, p)
		theta2 := new(big.Int).Mul(theta, theta)
		theta2.Mod(theta2, p)
		sub := binaryRootsRec(shifted, theta2, k-1, p)
		oddRoots = make([]Root, len(sub))
		for i, r := range sub {
			root := new(big.Int).Mul(r.Value, theta)
			root.Mod(root, p)
			oddRoots[i] = Root{Value: root, Log: 2*r.Log + 1}
		}
	}

	return append(evenRoots, oddRoots...)
}

// xPowModF returns x^e mod f via repeated squaring (spec.md section 4.4):
// deg(result) < deg(f) regardless of how large e is, since every
// intermediate product is reduced mod f immediately.
func xPowModF(f *densepoly.Mod, e uint64, p *big.Int) *densepoly.Mod {
	base := densepoly.FromBigInts(p, []*big.Int{big.NewInt(0), big.NewInt(1)}) // x
	result := densepoly.FromBigInts(p, []*big.Int{big.NewInt(1)})              // 1
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base).Rem(f)
		}
		base = base.Mul(base).Rem(f)
		e >>= 1
	}
	return result
}

// substituteThetaX maps f(x) to f(theta*x), then rescales to monic by
// dividing through by theta^deg(f) (spec.md section 4.4 step 4).
func substituteThetaX(f *densepoly.Mod, theta *big.Int, p *big.Int) *densepoly.Mod {
	deg := f.Degree()
	coeffs := make([]*big.Int, deg+1)
	pw := big.NewInt(1)
	for i := 0; i <= deg; i++ {
		c := new(big.Int).Mul(f.Coeff(i), pw)
		c.Mod(c, p)
		coeffs[i] = c
		pw.Mul(pw, theta)
		pw.Mod(pw, p)
	}
	result := densepoly.FromBigInts(p, coeffs)
	return result.Monic()
}
