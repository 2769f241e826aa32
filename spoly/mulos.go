package spoly

import (
	"math/big"

	"github.com/dsroche/spoly/densepoly"
	"github.com/dsroche/spoly/rand"
)

// maxMulOSRetries bounds the outer verify-and-retry loop (spec.md
// section 4.8 step 3 / section 7's "modular verification mismatch").
// Grounded on original_source/fmpz_spoly/mul_OS.c's do...while retry,
// made a bounded loop per SPEC_FULL.md section 7 rather than the
// original's unconditional retry.
const maxMulOSRetries = 64

// maxCoeffRecoveryPrimes bounds mulCoeffs' prime-projection loop so a
// pathological support never spins forever; in practice a handful of
// primes resolve every coefficient.
const maxCoeffRecoveryPrimes = 4096

// nextPrimeAtLeast returns the smallest odd prime >= n (so 3 for n <= 3).
func nextPrimeAtLeast(n int64) *big.Int {
	if n < 2 {
		n = 2
	}
	cand := big.NewInt(n)
	if cand.Bit(0) == 0 {
		cand.Add(cand, big.NewInt(1))
	}
	for !cand.ProbablyPrime(30) {
		cand.Add(cand, big.NewInt(2))
	}
	return cand
}

// coeffRecovery tracks per-target-exponent recovery progress across
// successive prime projections. knownMask mirrors the "known" bit
// vector of
// original_source/fmpz_spoly/mul_coeffs.c (SPEC_FULL.md section 9's
// supplement), so partial progress from a prime that only resolved some
// targets isn't recomputed when a later prime is tried.
type coeffRecovery struct {
	targets   []*big.Int // candidate exponents S, sorted
	coeffs    []*big.Int // recovered coefficients, nil until known
	knownMask []bool
	remaining int
}

func newCoeffRecovery(targets []*big.Int) *coeffRecovery {
	return &coeffRecovery{
		targets:   targets,
		coeffs:    make([]*big.Int, len(targets)),
		knownMask: make([]bool, len(targets)),
		remaining: len(targets),
	}
}

// cyclicReduce folds prod's dense coefficients into p residue classes mod
// x^p - 1 (spec.md section 4.8 step 2): class j accumulates prod[j],
// prod[j+p], prod[j+2p], ... since a degree-2p-2 product of two
// length-p reductions spans two full wraps around the cyclic modulus.
func cyclicReduce(prod *densepoly.Z, p int) []*big.Int {
	out := make([]*big.Int, p)
	for j := range out {
		out[j] = new(big.Int)
	}
	for j := 0; j <= prod.Degree(); j++ {
		c := prod.Coeff(j)
		if c.Sign() == 0 {
			continue
		}
		out[j%p].Add(out[j%p], c)
	}
	return out
}

// mulCoeffs implements the coefficient-recovery procedure of spec.md
// section 4.8 step 2: repeated prime projection (primes chosen
// deterministically by nextPrimeAtLeast, not at random), reducing both
// inputs modulo x^p-1 by exponent-class sum, multiplying the two dense
// length-p polynomials and folding the product back into p classes via
// cyclicReduce, then reading off any target whose class is a singleton
// under that prime once already-known targets' contributions to that
// class have been subtracted back out.
func mulCoeffs(f, g *Poly, targets []*big.Int) *coeffRecovery {
	rec := newCoeffRecovery(targets)
	usedPrimes := make(map[string]bool)

	p := nextPrimeAtLeast(int64(2 * rec.remaining))
	if p.Cmp(big.NewInt(3)) < 0 {
		p = big.NewInt(3)
	}

	for attempt := 0; attempt < maxCoeffRecoveryPrimes && rec.remaining > 0; attempt++ {
		for usedPrimes[p.String()] {
			p = nextPrimeAtLeast(p.Int64() + 1)
		}
		usedPrimes[p.String()] = true

		pInt := int(p.Int64())
		fDense, errF := RemCycDense(f, pInt)
		gDense, errG := RemCycDense(g, pInt)
		if errF != nil || errG != nil {
			p = nextPrimeAtLeast(p.Int64() + 1)
			continue
		}
		wrapped := cyclicReduce(fDense.Mul(gDense), pInt)

		// class membership: which unknown target indices fall in each
		// residue class mod p, and the total contribution already-known
		// targets in that class make to wrapped[cls] (which must be
		// subtracted before reading off a newly-resolved singleton).
		classCount := make(map[int64]int)
		classTargets := make(map[int64][]int)
		knownContribution := make(map[int64]*big.Int)
		for i, e := range rec.targets {
			cls := new(big.Int).Mod(e, p).Int64()
			if rec.knownMask[i] {
				if knownContribution[cls] == nil {
					knownContribution[cls] = new(big.Int)
				}
				knownContribution[cls].Add(knownContribution[cls], rec.coeffs[i])
				continue
			}
			classCount[cls]++
			classTargets[cls] = append(classTargets[cls], i)
		}

		resolvedAny := false
		for cls, idxs := range classTargets {
			if classCount[cls] != 1 {
				continue
			}
			idx := idxs[0]
			val := new(big.Int).Set(wrapped[cls])
			if kc, ok := knownContribution[cls]; ok {
				val.Sub(val, kc)
			}
			rec.coeffs[idx] = val
			rec.knownMask[idx] = true
			rec.remaining--
			resolvedAny = true
		}

		if resolvedAny {
			p = nextPrimeAtLeast(int64(2 * rec.remaining))
		} else {
			p = nextPrimeAtLeast(p.Int64() + 1)
		}
	}
	return rec
}

// MulOS implements the output-sensitive sparse multiplier (C9, spec.md
// section 4.8): neither f nor g may be zero. Aliasing of the result with
// either input is handled by the caller receiving a fresh *Poly.
func MulOS(rng *rand.State, f, g *Poly) (*Poly, Status) {
	if f.IsZero() || g.IsZero() {
		return New(0, f.laurent || g.laurent), StatusOK
	}

	for attempt := 0; attempt < maxMulOSRetries; attempt++ {
		support, status := Sumset(rng, f, g)
		if status != StatusOK {
			continue
		}
		if len(support) == 0 {
			return New(0, f.laurent || g.laurent), StatusOK
		}

		rec := mulCoeffs(f, g, support)
		if rec.remaining > 0 {
			continue
		}

		h := New(len(support), f.laurent || g.laurent)
		for i, e := range support {
			h.terms = append(h.terms, Term{Coeff: rec.coeffs[i], Exp: e})
		}
		h.normaliseSelf()

		if !verifyProduct(rng, f, g, h) {
			continue
		}
		return h, StatusOK
	}
	return nil, StatusIncomplete
}

// verifyProduct implements spec.md section 4.8 step 3: picks a fresh
// random prime p' and point x, checks f(x)*g(x) == h(x) mod p'.
func verifyProduct(rng *rand.State, f, g, h *Poly) bool {
	p := nextPrimeAtLeast(1 << 20)
	p.Add(p, big.NewInt(int64(rng.Intn(1<<16))))
	p = nextPrimeAtLeast(p.Int64())
	x := rng.BigInt(p)
	fv := EvaluateMod(f, x, p)
	gv := EvaluateMod(g, x, p)
	hv := EvaluateMod(h, x, p)
	want := new(big.Int).Mul(fv, gv)
	want.Mod(want, p)
	return want.Cmp(hv) == 0
}
