package spoly

import (
	"math/big"

	"github.com/dsroche/spoly/rand"
)

// Randtest implements spec.md section 6's randtest(rng, T, D, h_bits)
// constructor (SPEC_FULL.md section 9 supplement, grounded on
// original_source/fmpz_spoly/randtest.c): a random sparse polynomial
// with exactly T distinct nonzero terms, exponents in [0, D) (or
// [-D, D) when laurent), and coefficients with at most h_bits bits in
// absolute value, nonzero sign chosen uniformly.
func Randtest(rng *rand.State, T int, D *big.Int, hBits int, laurent bool) *Poly {
	p := New(T, laurent)
	seen := make(map[string]bool)
	for len(p.terms) < T {
		e := randExponent(rng, D, laurent)
		key := e.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		c := randNonzeroCoeff(rng, hBits)
		p.terms = append(p.terms, Term{Coeff: c, Exp: e})
	}
	p.normaliseSelf()
	return p
}

func randExponent(rng *rand.State, D *big.Int, laurent bool) *big.Int {
	if !laurent {
		return rng.BigInt(D)
	}
	twoD := new(big.Int).Lsh(D, 1)
	e := rng.BigInt(twoD)
	return e.Sub(e, D)
}

func randNonzeroCoeff(rng *rand.State, hBits int) *big.Int {
	for {
		bound := new(big.Int).Lsh(big.NewInt(1), uint(hBits))
		c := rng.BigInt(bound)
		if c.Sign() == 0 {
			continue
		}
		if rng.Bool() {
			c.Neg(c)
		}
		return c
	}
}

// RandtestKron implements randtest_kron (spec.md section 6), used to
// generate multivariate-flavored test inputs via Kronecker substitution:
// builds a random multivariate sparse polynomial with T terms over
// nvars variables each bounded by shift (per-variable degree bound),
// then packs each term's exponent vector into one big integer exponent.
func RandtestKron(rng *rand.State, T int, shift *big.Int, hBits, nvars int) *Poly {
	shiftBits := uint(shift.BitLen())
	p := New(T, false)
	seen := make(map[string]bool)
	for len(p.terms) < T {
		exps := make([]*big.Int, nvars)
		for v := range exps {
			exps[v] = rng.BigInt(shift)
		}
		e := KronPack(exps, shiftBits)
		key := e.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		c := randNonzeroCoeff(rng, hBits)
		p.terms = append(p.terms, Term{Coeff: c, Exp: e})
	}
	p.normaliseSelf()
	return p
}
