package spoly

import (
	"math/big"

	"github.com/dsroche/spoly/densepoly"
)

// directEvalXover mirrors spec.md section 4.9's "direct when t < 32"
// regime boundary for evaluate_powers.
const directEvalXover = 32

// RemCyc implements rem_cyc (spec.md section 4.9): sets each term's
// exponent to e_i mod e (non-negative residue) and re-normalizes to
// combine resulting duplicates. e must be positive.
func RemCyc(p *Poly, e *big.Int) (*Poly, error) {
	if e.Sign() <= 0 {
		return nil, errInvalidCycModulus
	}
	terms := make([]Term, p.Terms())
	for i := 0; i < p.Terms(); i++ {
		t, _ := p.GetTerm(i)
		residue := new(big.Int).Mod(t.Exp, e)
		terms[i] = Term{Coeff: t.Coeff, Exp: residue}
	}
	out := New(p.Terms(), p.laurent)
	out.terms = Normalise(terms)
	return out, nil
}

// RemCycDense implements rem_cyc_dense (spec.md section 4.9): output is
// a length-e dense integer polynomial with position j equal to the sum
// of coefficients whose exponent is congruent to j mod e.
func RemCycDense(p *Poly, e int) (*densepoly.Z, error) {
	if e <= 0 {
		return nil, errInvalidCycModulus
	}
	coeffs := make([]*big.Int, e)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	eBig := big.NewInt(int64(e))
	for i := 0; i < p.Terms(); i++ {
		t, _ := p.GetTerm(i)
		j := new(big.Int).Mod(t.Exp, eBig).Int64()
		coeffs[j].Add(coeffs[j], t.Coeff)
	}
	return densepoly.ZFromBigInts(coeffs), nil
}

// RemCycNmod implements rem_cyc_nmod (spec.md section 4.9): same as
// RemCycDense but coefficients are additionally reduced mod q.
func RemCycNmod(p *Poly, e int, q *big.Int) (*densepoly.Mod, error) {
	z, err := RemCycDense(p, e)
	if err != nil {
		return nil, err
	}
	return z.Reduce(q), nil
}

// EvaluateMod implements evaluate_mod (spec.md section 4.9): sum c_i *
// a^e_i mod m via square-and-multiply per term.
func EvaluateMod(p *Poly, a *big.Int, m *big.Int) *big.Int {
	result := new(big.Int)
	for i := 0; i < p.Terms(); i++ {
		t, _ := p.GetTerm(i)
		e := t.Exp
		var pw *big.Int
		if e.Sign() < 0 {
			base := new(big.Int).ModInverse(a, m)
			pw = new(big.Int).Exp(base, new(big.Int).Neg(e), m)
		} else {
			pw = new(big.Int).Exp(a, e, m)
		}
		term := new(big.Int).Mul(t.Coeff, pw)
		result.Add(result, term)
		result.Mod(result, m)
	}
	return result
}

// EvaluatePowers implements evaluate_powers (spec.md section 4.9):
// evaluates P at w^0, w^1, ..., w^(L-1) mod p, choosing among three
// regimes by term count t and panel width L.
func EvaluatePowers(p *Poly, L int, w *big.Int, modulus *big.Int) []*big.Int {
	t := p.Terms()
	out := make([]*big.Int, L)

	if t < directEvalXover {
		pw := big.NewInt(1)
		for i := 0; i < L; i++ {
			out[i] = EvaluateMod(p, pw, modulus)
			pw.Mul(pw, w)
			pw.Mod(pw, modulus)
		}
		return out
	}

	if L < t {
		// one transposed-Vandermonde forward over all t terms, giving L
		// outputs.
		v := make([]*big.Int, t)
		x := make([]*big.Int, t)
		for i := 0; i < t; i++ {
			term, _ := p.GetTerm(i)
			v[i] = new(big.Int).Exp(w, term.Exp, modulus)
			x[i] = term.Coeff
		}
		return TranspVandermondeForward(v, x, L, modulus)
	}

	// single forward transform: L >= t already bounds the cost
	// reasonably, so build a dense integer polynomial once and evaluate
	// it at each of the L powers.
	var degMax int64
	for i := 0; i < t; i++ {
		term, _ := p.GetTerm(i)
		if term.Exp.Int64() > degMax {
			degMax = term.Exp.Int64()
		}
	}
	dense := make([]*big.Int, degMax+1)
	for i := range dense {
		dense[i] = new(big.Int)
	}
	for i := 0; i < t; i++ {
		term, _ := p.GetTerm(i)
		dense[term.Exp.Int64()] = term.Coeff
	}
	z := densepoly.ZFromBigInts(dense)

	pw := big.NewInt(1)
	for i := 0; i < L; i++ {
		out[i] = new(big.Int).Mod(z.Evaluate(pw), modulus)
		pw.Mul(pw, w)
		pw.Mod(pw, modulus)
	}
	return out
}

