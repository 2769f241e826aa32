package spoly

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/dsroche/spoly/bigint"
	"github.com/dsroche/spoly/internal/arch"
	"github.com/dsroche/spoly/rand"
)

// Basis is the small struct of named parameters basis initializers take
// (spec.md section 9, "dynamic named parameters"): how many terms to
// budget for, how many bits the degree and height need, and whether
// negative exponents are in play.
type Basis struct {
	Terms      int
	DegreeBits int
	HeightBits int
	Laurent    bool
}

// BPBasis is the output of BPBasisInit (spec.md section 4.2): a prime
// q = 1 (mod 2^k) with q > 2H, and a root of unity w of exact order 2^k.
type BPBasis struct {
	Params Basis
	Q      *bigint.Int
	K      uint
	W      *bigint.Int
}

// BPBasisInit produces (q, k, w) per spec.md section 4.2.
func BPBasisInit(rng *rand.State, b Basis) (*BPBasis, Status) {
	k := b.DegreeBits
	if k < 1 {
		k = 1
	}
	if b.Laurent {
		k++
	}
	K := uint(k)

	twoK := new(big.Int).Lsh(big.NewInt(1), K)
	h := new(big.Int).Lsh(big.NewInt(1), uint(b.HeightBits))
	twoH := new(big.Int).Lsh(h, 1)

	// start candidate: ceil(2H / 2^k) * 2^k + 1
	q := new(big.Int).Add(twoH, new(big.Int).Sub(twoK, big.NewInt(1)))
	q.Div(q, twoK)
	q.Mul(q, twoK)
	q.Add(q, big.NewInt(1))

	for {
		qi := bigint.FromBig(q)
		if qi.ProbablyPrime(30) && q.Cmp(twoH) > 0 {
			// found candidate modulus; search for a root of exact order 2^k
			for attempt := 0; attempt < 64; attempt++ {
				wp := rng.BigInt(q)
				if wp.Sign() == 0 {
					continue
				}
				exp := new(big.Int).Sub(q, big.NewInt(1))
				exp.Div(exp, twoK)
				w := new(big.Int).Exp(wp, exp, q)
				half := new(big.Int).Lsh(big.NewInt(1), K-1)
				check := new(big.Int).Exp(w, half, q)
				negOne := new(big.Int).Sub(q, big.NewInt(1))
				if check.Cmp(negOne) == 0 {
					return &BPBasis{Params: b, Q: qi, K: K, W: bigint.FromBig(w)}, StatusOK
				}
			}
		}
		q.Add(q, twoK)
	}
}

// SPRegime distinguishes the three SP-basis construction paths.
type SPRegime int

const (
	SPEmpty SPRegime = iota
	SPDense
	SPGeneral
)

// SPBasis is the output of SPBasisInit (spec.md section 4.2).
type SPBasis struct {
	Params        Basis
	Regime        SPRegime
	NumRounds     int
	GroupsPerRnd  int
	CoeffsPerRnd  int
	ExpPrimeBits  int
	CoefPrimeBits int
	EimgNeeded    int
	CimgNeeded    int
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bitsLen(n - 1)
}

func bitsLen(n int) int {
	l := 0
	for n > 0 {
		l++
		n >>= 1
	}
	return l
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// DefaultSPBasisInit calls SPBasisInit with the coefficient-prime width
// internal/arch.WordBits reports for the host, matching SPEC_FULL.md
// section 4.13's word-size dispatch for the Dense regime.
func DefaultSPBasisInit(b Basis) *SPBasis {
	return SPBasisInit(b, arch.WordBits()-1)
}

// SPBasisInit implements the three regimes of spec.md section 4.2.
// cpbitsDense is the coefficient-modulus prime width, used by both the
// Dense and General regimes; callers outside a test harness should generally go through
// DefaultSPBasisInit, which supplies it via internal/arch's word-size
// dispatch (SPEC_FULL.md section 4.13).
func SPBasisInit(b Basis, cpbitsDense int) *SPBasis {
	if b.Terms == 0 || b.HeightBits == 0 {
		return &SPBasis{Params: b, Regime: SPEmpty}
	}
	logT := ceilLog2(b.Terms)
	if b.DegreeBits <= logT+2 {
		cpbits := cpbitsDense
		coeffsPerRnd := 1 + ceilDiv(b.HeightBits, cpbits-1)
		return &SPBasis{
			Params:        b,
			Regime:        SPDense,
			NumRounds:     1,
			GroupsPerRnd:  1,
			CoeffsPerRnd:  coeffsPerRnd,
			ExpPrimeBits:  logT + 2,
			CoefPrimeBits: cpbits,
			EimgNeeded:    1,
			CimgNeeded:    coeffsPerRnd/2 + 1,
		}
	}

	numRounds := ceilLog2(logT + 11)
	if numRounds < 1 {
		numRounds = 1
	}
	pbits := logT + 2
	for countPrimesOfBitlen(pbits) < uint64(2*numRounds*groupsPerEstimate(b.DegreeBits, pbits)) {
		pbits++
	}
	groupsPer := groupsPerEstimate(b.DegreeBits, pbits)
	cpbits := cpbitsDense
	coeffsPer := 1 + ceilDiv(2*b.HeightBits+1, cpbits-1)
	eimgNeeded := 1
	if v := 1 + ceilDiv(b.DegreeBits-1, pbits-1); v > eimgNeeded {
		eimgNeeded = v
	}
	cimgNeeded := 1 + ceilDiv(b.HeightBits, cpbits-1)

	return &SPBasis{
		Params:        b,
		Regime:        SPGeneral,
		NumRounds:     numRounds,
		GroupsPerRnd:  groupsPer,
		CoeffsPerRnd:  coeffsPer,
		ExpPrimeBits:  pbits,
		CoefPrimeBits: cpbits,
		EimgNeeded:    eimgNeeded,
		CimgNeeded:    cimgNeeded,
	}
}

func groupsPerEstimate(dBits, pbits int) int {
	return 1 + ceilDiv(2*dBits, pbits-1)
}

// primeCountTable holds pi(2^b) for b = 0..34, matching spec.md section 9's
// "35 precomputed entries" note.
var primeCountTable = [35]uint64{
	0, 1, 2, 4, 6, 11, 18, 31, 54, 97, 172, 309, 564, 1028, 1900, 3512,
	6542, 12251, 23000, 43390, 82025, 155611, 295947, 564163, 1077871,
	2063689, 3957809, 7603553, 14630843, 28192750, 54400028, 105097565,
	203280221, 393615806, 762939111,
}

// countPrimesOfBitlen returns a usable lower bound on the number of
// primes with exactly `bits` bits, using the precomputed table below
// bits=35 and the ALTree/bigfloat logarithmic-integral bound beyond it
// (SPEC_FULL.md section 4.14).
func countPrimesOfBitlen(bits int) uint64 {
	if bits <= 0 {
		return 0
	}
	if bits < len(primeCountTable) {
		if bits == 0 {
			return 0
		}
		return primeCountTable[bits] - primeCountTable[bits-1]
	}
	lo := piUpperBound(float64(uint64(1) << uint(bits-1)))
	hi := piLowerBound(float64(uint64(1) << uint(bits)))
	if hi < lo {
		return 0
	}
	return uint64(hi - lo)
}

// liBig computes the logarithmic integral Li(x) via bigfloat, used for
// the prime-counting bound beyond the precomputed table.
func liBig(x float64) float64 {
	bx := new(big.Float).SetFloat64(x)
	li := bigfloat.Li(bx)
	f, _ := li.Float64()
	return f
}

// piErrorTerm bounds |pi(n) - Li(n)| per the classical estimate used in
// SPEC_FULL.md section 4.14.
func piErrorTerm(n float64) float64 {
	ln := math.Log(n)
	return ln * math.Sqrt(n) / (8 * math.Pi)
}

func piLowerBound(n float64) float64 {
	v := liBig(n) - piErrorTerm(n)
	if v < 0 {
		return 0
	}
	return v
}

func piUpperBound(n float64) float64 {
	return liBig(n) + piErrorTerm(n)
}

// PrimRoots implements the multi-prime helper of spec.md section 4.2:
// draws a random prime p, then enumerates q = a*p+1 for even a, keeping
// each prime q and a corresponding root w = r^a of order p, until the
// product of chosen q's exceeds qProdBits bits, or returns
// StatusEstimateTooLow if maxLen is exhausted first.
func PrimRoots(rng *rand.State, pBits, qProdBits, maxLen int) ([]*bigint.Int, []*bigint.Int, Status) {
	p, err := bigint.RandPrime(pBits)
	if err != nil {
		return nil, nil, StatusIncomplete
	}

	var qs, ws []*bigint.Int
	accBits := 0
	a := big.NewInt(2)
	for accBits < qProdBits {
		if len(qs) >= maxLen {
			return nil, nil, StatusEstimateTooLow
		}
		q := new(big.Int).Mul(a, p.Big())
		q.Add(q, big.NewInt(1))
		qi := bigint.FromBig(q)
		if qi.ProbablyPrime(30) {
			for attempt := 0; attempt < 64; attempt++ {
				r := rng.BigInt(q)
				if r.Cmp(big.NewInt(1)) <= 0 {
					continue
				}
				w := new(big.Int).Exp(r, a, q)
				if w.Cmp(big.NewInt(1)) > 0 {
					qs = append(qs, qi)
					ws = append(ws, bigint.FromBig(w))
					accBits += qi.BitLen()
					break
				}
			}
		}
		a.Add(a, big.NewInt(2))
	}
	return qs, ws, StatusOK
}
