package spoly

import (
	"math/big"

	"github.com/dsroche/spoly/densepoly"
)

// BPEval evaluates P at the first 2T powers of the basis's root of unity
// mod q (spec.md section 4.5's evaluation vector b_i = P(w^i) mod q).
func BPEval(basis *BPBasis, p *Poly) []*big.Int {
	n := 2 * basis.Params.Terms
	b := make([]*big.Int, n)
	q := basis.Q.Big()
	pw := big.NewInt(1)
	w := basis.W.Big()
	for i := 0; i < n; i++ {
		b[i] = EvaluateMod(p, pw, q)
		pw = new(big.Int).Mul(pw, w)
		pw.Mod(pw, q)
	}
	return b
}

// BPAdd, BPMul, BPPow combine two evaluation vectors pointwise, matching
// spec.md section 6's evaluation-space combinators ("bp_add, bp_mul,
// bp_pow"): since BP evaluations are just values of a ring homomorphism
// (evaluation at powers of w), addition/multiplication/exponentiation of
// the underlying polynomials correspond exactly to pointwise operations
// on their evaluation vectors.
func BPAdd(basis *BPBasis, a, b []*big.Int) []*big.Int {
	q := basis.Q.Big()
	out := make([]*big.Int, len(a))
	for i := range a {
		out[i] = new(big.Int).Add(a[i], b[i])
		out[i].Mod(out[i], q)
	}
	return out
}

func BPMul(basis *BPBasis, a, b []*big.Int) []*big.Int {
	q := basis.Q.Big()
	out := make([]*big.Int, len(a))
	for i := range a {
		out[i] = new(big.Int).Mul(a[i], b[i])
		out[i].Mod(out[i], q)
	}
	return out
}

func BPPow(basis *BPBasis, a []*big.Int, e *big.Int) []*big.Int {
	q := basis.Q.Big()
	out := make([]*big.Int, len(a))
	for i := range a {
		out[i] = new(big.Int).Exp(a[i], e, q)
	}
	return out
}

// BPInterp implements the BP interpolation engine (spec.md section 4.5):
// Berlekamp-Massey recovers the Prony polynomial, C4 recovers roots and
// exponents simultaneously, and the transposed Vandermonde inverse
// recovers coefficients, lifted to the symmetric range of q.
func BPInterp(basis *BPBasis, b []*big.Int) (*Poly, Status) {
	q := basis.Q.Big()
	lambda := densepoly.MinPoly(q, b)
	t := lambda.Degree()
	if t > basis.Params.Terms {
		return nil, StatusEstimateTooLow
	}
	if t <= 0 {
		return New(0, basis.Params.Laurent), StatusOK
	}

	roots := BinaryRoots(lambda, basis.W.Big(), basis.K, q)
	if len(roots) != t {
		return nil, StatusEstimateTooLow
	}

	v := make([]*big.Int, t)
	for i, r := range roots {
		v[i] = r.Value
	}
	bt := make([]*big.Int, t)
	copy(bt, b[:t])

	coeffs, err := TranspVandermondeInverse(v, bt, q)
	if err != nil {
		return nil, StatusEstimateTooLow
	}

	result := New(t, basis.Params.Laurent)
	for i, r := range roots {
		e := new(big.Int).SetUint64(r.Log)
		if basis.Params.Laurent {
			// logs are reduced mod 2^k; center into a symmetric exponent
			// range when Laurent polynomials are in play.
			k := new(big.Int).Lsh(big.NewInt(1), basis.K)
			halfK := new(big.Int).Rsh(k, 1)
			if e.Cmp(halfK) >= 0 {
				e.Sub(e, k)
			}
		}
		if err := result.SetCoeff(coeffs[i], e); err != nil {
			return nil, StatusEstimateTooLow
		}
	}
	result.normaliseSelf()
	return result, StatusOK
}
