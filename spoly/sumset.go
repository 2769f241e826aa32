package spoly

import (
	"math/big"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/dsroche/spoly/bigint"
	"github.com/dsroche/spoly/rand"
)

// stabilityWindow and requiredAgreement implement spec.md section 4.7
// step 1's "stable for 10 consecutive trials" stopping rule (SPEC_FULL.md
// section 4.15): the last stabilityWindow trial nonzero-counts are kept,
// and the window is considered stable once its mode occurs at least
// requiredAgreement times and its standard deviation is zero (i.e. the
// window is actually constant — stats.StandardDeviation is used rather
// than a hand-rolled equality scan so a near-constant but noisy window
// is rejected the same way a streak counter would reject it).
const (
	stabilityWindow   = 10
	requiredAgreement = 7
	maxSumsetRetries  = 16
)

// indicatorPoly builds Sum x^{e_i} over the support of p (all
// coefficients replaced by 1), used both for the cheap modular support
// estimate and for the exact BP-based recovery: the support of the
// product of two indicator polynomials is exactly the sumset of their
// exponents, since indicator coefficients are always positive and so
// never exactly cancel.
func indicatorPoly(p *Poly) *Poly {
	out := New(p.Terms(), p.laurent)
	for i := 0; i < p.Terms(); i++ {
		t, _ := p.GetTerm(i)
		out.terms = append(out.terms, Term{Coeff: big.NewInt(1), Exp: new(big.Int).Set(t.Exp)})
	}
	return out
}

// estimateSumsetSize implements spec.md section 4.7 step 1: repeatedly
// reduce indicator polys mod a random small prime (cyclic modulus) over
// a random small coefficient field, count nonzero residues of the
// product, and grow the estimate until it is stable, then double it.
func estimateSumsetSize(rng *rand.State, fi, gi *Poly) int {
	window := make([]float64, 0, stabilityWindow)
	best := 0
	for trial := 0; trial < 4096; trial++ {
		e := 64 + rng.Intn(1<<20)
		q, err := bigint.RandPrime(24)
		if err != nil {
			continue
		}
		fr, err1 := RemCycNmod(fi, e, q.Big())
		gr, err2 := RemCycNmod(gi, e, q.Big())
		if err1 != nil || err2 != nil {
			continue
		}
		prod := fr.Mul(gr)
		count := 0
		for j := 0; j <= prod.Degree(); j++ {
			if prod.Coeff(j).Sign() != 0 {
				count++
			}
		}
		if count > best {
			best = count
		}
		window = append(window, float64(count))
		if len(window) > stabilityWindow {
			window = window[1:]
		}
		if len(window) == stabilityWindow {
			mode, _ := stats.Mode(window)
			sd, _ := stats.StandardDeviation(window)
			agreement := 0
			for _, v := range window {
				if len(mode) > 0 && v == mode[0] {
					agreement++
				}
			}
			if agreement >= requiredAgreement && sd == 0 {
				break
			}
		}
	}
	return best * 2
}

// Sumset implements the sumset estimator (C8, spec.md section 4.7):
// returns, with high probability, the sorted set of exponents of f*g.
// f and g must not be zero. On repeated randomized-verification failure
// it returns StatusIncomplete after maxSumsetRetries attempts.
func Sumset(rng *rand.State, f, g *Poly) ([]*big.Int, Status) {
	fi, gi := indicatorPoly(f), indicatorPoly(g)

	for attempt := 0; attempt < maxSumsetRetries; attempt++ {
		sEst := estimateSumsetSize(rng, fi, gi)
		if sEst < 1 {
			sEst = 1
		}

		degBits := maxExpBits(f) + maxExpBits(g) + 2
		heightBits := ceilLog2(f.Terms()*g.Terms() + 1)
		if heightBits < 1 {
			heightBits = 1
		}

		basis, status := BPBasisInit(rng, Basis{Terms: sEst, DegreeBits: degBits, HeightBits: heightBits})
		if status != StatusOK {
			continue
		}

		evalF := BPEval(basis, fi)
		evalG := BPEval(basis, gi)
		prodEval := BPMul(basis, evalF, evalG)

		h, status := BPInterp(basis, prodEval)
		if status != StatusOK {
			continue
		}

		if !verifySumset(rng, f, g, h) {
			continue
		}

		exps := make([]*big.Int, h.Terms())
		for i := 0; i < h.Terms(); i++ {
			t, _ := h.GetTerm(i)
			exps[i] = t.Exp
		}
		sort.Slice(exps, func(i, j int) bool { return exps[i].Cmp(exps[j]) < 0 })
		return exps, StatusOK
	}
	return nil, StatusIncomplete
}

// verifySumset implements spec.md section 4.7/4.8's randomized
// consistency check: h is supposed to be the exact indicator-product
// polynomial indicator(f)*indicator(g) (its support is the sumset), so
// at a fresh random point under a fresh random prime, indicator(f)(x) *
// indicator(g)(x) must equal h(x) exactly.
func verifySumset(rng *rand.State, f, g, h *Poly) bool {
	p, err := bigint.RandPrime(40)
	if err != nil {
		return false
	}
	x := rng.BigInt(p.Big())
	fi, gi := indicatorPoly(f), indicatorPoly(g)
	fv := EvaluateMod(fi, x, p.Big())
	gv := EvaluateMod(gi, x, p.Big())
	want := new(big.Int).Mul(fv, gv)
	want.Mod(want, p.Big())
	got := EvaluateMod(h, x, p.Big())
	return want.Cmp(got) == 0
}

func maxExpBits(p *Poly) int {
	if p.Terms() == 0 {
		return 1
	}
	return p.Degree().BitLen() + 1
}
