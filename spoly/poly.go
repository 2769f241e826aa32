// Package spoly implements sparse integer polynomial arithmetic and the
// big-prime (BP) and small-primes (SP) sparse interpolation engines:
// recovering an unknown polynomial with few nonzero terms but possibly
// enormous degree and coefficients from black-box evaluations, and an
// output-sensitive sparse multiplication built on top of interpolation.
//
// Grounded throughout on the FLINT fmpz_spoly module
// (original_source/fmpz_spoly), with Go idiom (receiver methods,
// constructor functions, explicit error/status returns rather than
// exceptions) drawn from the ring package of this module's teacher
// repository.
package spoly

import (
	"fmt"
	"math/big"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/dsroche/spoly/densepoly"
)

// maxDenseDegree bounds poly_to_dense's allocation (spec.md section 8,
// scenario S5): a degree beyond this many bits is rejected rather than
// materialized as a dense vector.
const maxDenseDegree = 1 << 24

// insertionXover is the crossover point mirroring
// FMPZ_SPOLY_QSORT_XOVER / the hybrid sort described in spec.md 4.1. Up
// to insertionXover terms, normalise uses a simple
// insertion sort that combines as it goes; above it, a single sort pass
// followed by a linear combine pass is used instead of a hand-rolled
// quicksort, since Go's sort.Slice already does the partitioning work an
// idiomatic Go port would reach for.
const insertionXover = 128

// Term is a single (coefficient, exponent) pair of a sparse polynomial.
// The coefficient is never zero in a normalised Poly.
type Term struct {
	Coeff *big.Int
	Exp   *big.Int
}

// Poly is a sparse polynomial over Z: a finite sequence of terms ordered
// by strictly decreasing exponent (spec.md section 3, invariants 1-3).
// The zero value is the zero polynomial (not Laurent-capable); use New
// to request Laurent (negative-exponent) support.
type Poly struct {
	terms   []Term
	laurent bool
}

// New creates an empty sparse polynomial. capHint reserves storage for
// that many terms; laurent, if true, permits negative exponents.
func New(capHint int, laurent bool) *Poly {
	p := &Poly{laurent: laurent}
	if capHint > 0 {
		p.terms = make([]Term, 0, capHint)
	}
	return p
}

// Reserve grows the term storage to at least n, without changing the
// polynomial's value.
func (p *Poly) Reserve(n int) {
	if cap(p.terms) >= n {
		return
	}
	grown := make([]Term, len(p.terms), n)
	copy(grown, p.terms)
	p.terms = grown
}

// Terms returns the number of nonzero terms.
func (p *Poly) Terms() int { return len(p.terms) }

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool { return len(p.terms) == 0 }

// IsOne reports whether p is the constant polynomial 1.
func (p *Poly) IsOne() bool {
	return len(p.terms) == 1 && p.terms[0].Exp.Sign() == 0 && p.terms[0].Coeff.Cmp(big.NewInt(1)) == 0
}

// IsTerm reports whether p is a single monomial (zero or one terms).
func (p *Poly) IsTerm() bool { return len(p.terms) <= 1 }

// Degree returns the highest exponent, or -1 for the zero polynomial
// (spec.md section 3, invariant 4).
func (p *Poly) Degree() *big.Int {
	if len(p.terms) == 0 {
		return big.NewInt(-1)
	}
	return new(big.Int).Set(p.terms[0].Exp)
}

// LowDegree returns the lowest exponent, or 1 for the zero polynomial
// (spec.md section 3, invariant 5).
func (p *Poly) LowDegree() *big.Int {
	if len(p.terms) == 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Set(p.terms[len(p.terms)-1].Exp)
}

// Height returns the maximum absolute value of any coefficient (0 for
// the zero polynomial).
func (p *Poly) Height() *big.Int {
	h := big.NewInt(0)
	for _, t := range p.terms {
		a := new(big.Int).Abs(t.Coeff)
		if a.Cmp(h) > 0 {
			h = a
		}
	}
	return h
}

// HeightBits returns the bit length of Height().
func (p *Poly) HeightBits() int { return p.Height().BitLen() }

// MaxCoeffBits is an alias for HeightBits, matching the spec.md section 6
// inspector name.
func (p *Poly) MaxCoeffBits() int { return p.HeightBits() }

// GetTerm returns the i-th term (by descending exponent), or an error if
// i is out of range.
func (p *Poly) GetTerm(i int) (Term, error) {
	if i < 0 || i >= len(p.terms) {
		return Term{}, fmt.Errorf("spoly: GetTerm(%d): %w", i, ErrInvariant)
	}
	return Term{Coeff: new(big.Int).Set(p.terms[i].Coeff), Exp: new(big.Int).Set(p.terms[i].Exp)}, nil
}

// GetCoeff returns the coefficient at exponent e (zero if absent),
// located by binary search since terms are sorted by descending
// exponent. Grounded on original_source/fmpz_spoly/get_coeff.c.
func (p *Poly) GetCoeff(e *big.Int) *big.Int {
	idx, found := p.search(e)
	if !found {
		return new(big.Int)
	}
	return new(big.Int).Set(p.terms[idx].Coeff)
}

// search returns the index of the term with exponent e (descending
// order), and whether it was found. When not found, idx is the
// insertion point that keeps the slice sorted descending. Uses
// slices.BinarySearchFunc with a reversed comparator since p.terms is
// sorted by descending exponent rather than the ascending order that
// function expects.
func (p *Poly) search(e *big.Int) (idx int, found bool) {
	return slices.BinarySearchFunc(p.terms, e, func(t Term, target *big.Int) int {
		return target.Cmp(t.Exp)
	})
}

// Zero clears p to the zero polynomial, keeping any reserved capacity.
func (p *Poly) Zero() { p.terms = p.terms[:0] }

// SetOne sets p to the constant polynomial 1.
func (p *Poly) SetOne() {
	p.terms = p.terms[:0]
	p.terms = append(p.terms, Term{Coeff: big.NewInt(1), Exp: big.NewInt(0)})
}

// Set sets p equal to other (deep copy).
func (p *Poly) Set(other *Poly) {
	p.laurent = other.laurent
	p.terms = make([]Term, len(other.terms))
	for i, t := range other.terms {
		p.terms[i] = Term{Coeff: new(big.Int).Set(t.Coeff), Exp: new(big.Int).Set(t.Exp)}
	}
}

// Clone returns a deep copy of p.
func (p *Poly) Clone() *Poly {
	c := New(len(p.terms), p.laurent)
	c.Set(p)
	return c
}

// Equal reports whether p and other represent the same polynomial.
// Grounded on original_source/fmpz_spoly/equal_poly.c.
func (p *Poly) Equal(other *Poly) bool {
	if len(p.terms) != len(other.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].Exp.Cmp(other.terms[i].Exp) != 0 || p.terms[i].Coeff.Cmp(other.terms[i].Coeff) != 0 {
			return false
		}
	}
	return true
}

// checkExp validates e against the Laurent flag, returning a wrapped
// ErrInvariant if a negative exponent is used on a non-Laurent Poly.
func (p *Poly) checkExp(e *big.Int) error {
	if !p.laurent && e.Sign() < 0 {
		return fmt.Errorf("spoly: negative exponent %s on non-Laurent polynomial: %w", e, ErrInvariant)
	}
	return nil
}

// SetCoeff sets the coefficient at exponent e to c, inserting, removing,
// or overwriting a term as needed to preserve invariants 1-3 (spec.md
// section 4.1). Grounded on original_source/fmpz_spoly/set_coeff.c.
func (p *Poly) SetCoeff(c *big.Int, e *big.Int) error {
	if err := p.checkExp(e); err != nil {
		return err
	}
	idx, found := p.search(e)
	switch {
	case c.Sign() == 0 && found:
		p.terms = append(p.terms[:idx], p.terms[idx+1:]...)
	case c.Sign() == 0 && !found:
		// no-op
	case found:
		p.terms[idx].Coeff.Set(c)
	default:
		p.terms = append(p.terms, Term{})
		copy(p.terms[idx+1:], p.terms[idx:])
		p.terms[idx] = Term{Coeff: new(big.Int).Set(c), Exp: new(big.Int).Set(e)}
	}
	return nil
}

// Neg sets p = -other.
func (p *Poly) Neg(other *Poly) {
	p.Set(other)
	for i := range p.terms {
		p.terms[i].Coeff.Neg(p.terms[i].Coeff)
	}
}

// Add sets p = a + b, a linear merge by descending exponent
// (spec.md section 4.1). Aliasing p with a or b is supported.
func (p *Poly) Add(a, b *Poly) {
	merged := mergeTerms(a.terms, b.terms, 1)
	p.terms = merged
	p.laurent = a.laurent || b.laurent
}

// Sub sets p = a - b.
func (p *Poly) Sub(a, b *Poly) {
	merged := mergeTerms(a.terms, b.terms, -1)
	p.terms = merged
	p.laurent = a.laurent || b.laurent
}

// mergeTerms linearly merges two descending-exponent term lists, adding
// coefficients of colliding exponents (scaling b's coefficient by sign)
// and dropping terms that cancel to zero.
func mergeTerms(a, b []Term, bSign int64) []Term {
	result := make([]Term, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch a[i].Exp.Cmp(b[j].Exp) {
		case 1: // a's exponent bigger
			result = append(result, cloneTerm(a[i]))
			i++
		case -1:
			c := new(big.Int).Mul(b[j].Coeff, big.NewInt(bSign))
			result = append(result, Term{Coeff: c, Exp: new(big.Int).Set(b[j].Exp)})
			j++
		default:
			c := new(big.Int).Mul(b[j].Coeff, big.NewInt(bSign))
			c.Add(c, a[i].Coeff)
			if c.Sign() != 0 {
				result = append(result, Term{Coeff: c, Exp: new(big.Int).Set(a[i].Exp)})
			}
			i++
			j++
		}
	}
	for ; i < len(a); i++ {
		result = append(result, cloneTerm(a[i]))
	}
	for ; j < len(b); j++ {
		c := new(big.Int).Mul(b[j].Coeff, big.NewInt(bSign))
		result = append(result, Term{Coeff: c, Exp: new(big.Int).Set(b[j].Exp)})
	}
	return result
}

func cloneTerm(t Term) Term {
	return Term{Coeff: new(big.Int).Set(t.Coeff), Exp: new(big.Int).Set(t.Exp)}
}

// ScalarMul sets p = c*other.
func (p *Poly) ScalarMul(other *Poly, c *big.Int) {
	if c.Sign() == 0 {
		p.Zero()
		p.laurent = other.laurent
		return
	}
	p.laurent = other.laurent
	terms := make([]Term, len(other.terms))
	for i, t := range other.terms {
		terms[i] = Term{Coeff: new(big.Int).Mul(t.Coeff, c), Exp: new(big.Int).Set(t.Exp)}
	}
	p.terms = terms
}

// ScalarMul2Exp sets p = other * 2^k.
func (p *Poly) ScalarMul2Exp(other *Poly, k uint) {
	p.laurent = other.laurent
	terms := make([]Term, len(other.terms))
	for i, t := range other.terms {
		terms[i] = Term{Coeff: new(big.Int).Lsh(t.Coeff, k), Exp: new(big.Int).Set(t.Exp)}
	}
	p.terms = terms
}

// ScalarDiv sets p = floor(other / c) coefficient-wise, flooring each
// quotient (spec.md section 4.1, "scalar divide with floor semantics").
// Zero coefficients that result are dropped.
func (p *Poly) ScalarDiv(other *Poly, c *big.Int) error {
	if c.Sign() == 0 {
		return fmt.Errorf("spoly: ScalarDiv by zero: %w", ErrInvariant)
	}
	terms := make([]Term, 0, len(other.terms))
	for _, t := range other.terms {
		q, m := new(big.Int), new(big.Int)
		q.DivMod(t.Coeff, c, m)
		if c.Sign() < 0 && m.Sign() != 0 {
			// big.Int.DivMod is Euclidean (m always >= 0); floor
			// division additionally needs adjusting when c < 0.
			q.Sub(q, big.NewInt(1))
		}
		if q.Sign() != 0 {
			terms = append(terms, Term{Coeff: q, Exp: new(big.Int).Set(t.Exp)})
		}
	}
	p.terms = terms
	p.laurent = other.laurent
	return nil
}

// ScalarMod sets p's coefficients to other's coefficients reduced mod m
// (Euclidean, always in [0, m)), dropping any that become zero.
func (p *Poly) ScalarMod(other *Poly, m *big.Int) error {
	if m.Sign() == 0 {
		return fmt.Errorf("spoly: ScalarMod by zero: %w", ErrInvariant)
	}
	terms := make([]Term, 0, len(other.terms))
	for _, t := range other.terms {
		c := new(big.Int).Mod(t.Coeff, m)
		if c.Sign() != 0 {
			terms = append(terms, Term{Coeff: c, Exp: new(big.Int).Set(t.Exp)})
		}
	}
	p.terms = terms
	p.laurent = other.laurent
	return nil
}

// ScalarAddmul sets p = p + x*q via the three paths described in
// spec.md section 4.1: no support overlap (append/prepend via a merge),
// or full overlap (three-way merge). The general merge below subsumes
// both since mergeTerms already handles disjoint exponent ranges without
// any wasted work.
func (p *Poly) ScalarAddmul(q *Poly, x *big.Int) {
	scaled := make([]Term, len(q.terms))
	for i, t := range q.terms {
		scaled[i] = Term{Coeff: new(big.Int).Mul(t.Coeff, x), Exp: new(big.Int).Set(t.Exp)}
	}
	p.terms = mergeTerms(p.terms, scaled, 1)
}

// ScalarSubmul sets p = p - x*q. Per spec.md section 9's open question,
// this does NOT special-case x == 1 (the original source's unused
// fmpz_spoly_scalar_submul disagreed with the straightforward reading
// and is not carried over); it is implemented purely via ScalarAddmul
// with a negated scalar.
func (p *Poly) ScalarSubmul(q *Poly, x *big.Int) {
	p.ScalarAddmul(q, new(big.Int).Neg(x))
}

// MonMul sets p = c * x^e * other, a single-monomial multiply used by
// the subproduct-tree/evaluate helpers and by mul_coeffs' exponent-class
// bookkeeping.
func (p *Poly) MonMul(other *Poly, c *big.Int, e *big.Int) {
	terms := make([]Term, len(other.terms))
	for i, t := range other.terms {
		terms[i] = Term{
			Coeff: new(big.Int).Mul(t.Coeff, c),
			Exp:   new(big.Int).Add(t.Exp, e),
		}
	}
	p.terms = terms
	p.laurent = other.laurent
}

// ShiftLeft sets p = other * x^n, increasing every exponent by n exactly
// (spec.md section 8, testable property 10).
func (p *Poly) ShiftLeft(other *Poly, n *big.Int) error {
	if !other.laurent && n.Sign() < 0 && other.Terms() > 0 {
		lowest := other.LowDegree()
		if new(big.Int).Add(lowest, n).Sign() < 0 {
			return fmt.Errorf("spoly: ShiftLeft would produce a negative exponent on non-Laurent poly: %w", ErrInvariant)
		}
	}
	terms := make([]Term, len(other.terms))
	for i, t := range other.terms {
		terms[i] = Term{Coeff: new(big.Int).Set(t.Coeff), Exp: new(big.Int).Add(t.Exp, n)}
	}
	p.terms = terms
	p.laurent = other.laurent
	return nil
}

// Truncate discards every term with exponent > d.
func (p *Poly) Truncate(d *big.Int) {
	i := sort.Search(len(p.terms), func(i int) bool { return p.terms[i].Exp.Cmp(d) <= 0 })
	p.terms = p.terms[i:]
}

// Normalise restores invariants 1-3 on a term list that may be unsorted,
// have duplicate exponents, or have zero coefficients. It is idempotent
// (spec.md section 8, property 4) and preserves the multiset of
// (coefficient, exponent) mappings where a zero coefficient is
// equivalent to absence (spec.md section 4.1). Grounded on
// original_source/fmpz_spoly/normalise.c's hybrid insertion/quicksort
// merge, adapted into an idiomatic Go sort+combine pass (see
// insertionXover doc comment above for why a hand-written quicksort
// isn't reproduced here).
func Normalise(terms []Term) []Term {
	if len(terms) <= 1 {
		return dropZero(terms)
	}
	if len(terms) <= insertionXover {
		return insertionNormalise(terms)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Exp.Cmp(terms[j].Exp) > 0 })
	return combineSorted(terms)
}

func insertionNormalise(terms []Term) []Term {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		idx := sort.Search(len(out), func(i int) bool { return out[i].Exp.Cmp(t.Exp) <= 0 })
		if idx < len(out) && out[idx].Exp.Cmp(t.Exp) == 0 {
			out[idx].Coeff.Add(out[idx].Coeff, t.Coeff)
			if out[idx].Coeff.Sign() == 0 {
				out = append(out[:idx], out[idx+1:]...)
			}
			continue
		}
		out = append(out, Term{})
		copy(out[idx+1:], out[idx:])
		out[idx] = cloneTerm(t)
	}
	return out
}

func combineSorted(sorted []Term) []Term {
	out := sorted[:0:0]
	i := 0
	for i < len(sorted) {
		j := i + 1
		acc := new(big.Int).Set(sorted[i].Coeff)
		for j < len(sorted) && sorted[j].Exp.Cmp(sorted[i].Exp) == 0 {
			acc.Add(acc, sorted[j].Coeff)
			j++
		}
		if acc.Sign() != 0 {
			out = append(out, Term{Coeff: acc, Exp: new(big.Int).Set(sorted[i].Exp)})
		}
		i = j
	}
	return out
}

func dropZero(terms []Term) []Term {
	out := terms[:0:0]
	for _, t := range terms {
		if t.Coeff.Sign() != 0 {
			out = append(out, t)
		}
	}
	return out
}

// normaliseSelf runs Normalise on p's own term slice.
func (p *Poly) normaliseSelf() { p.terms = Normalise(p.terms) }

// ToDense implements poly_to_dense (spec.md section 6): converts p to a
// dense integer polynomial, rejecting with an ErrInvariant-wrapped error
// (DegreeTooLarge) when the degree is too large to materialize densely.
// Laurent polynomials (negative low-degree) are not representable
// densely and are rejected the same way.
func (p *Poly) ToDense() (*densepoly.Z, error) {
	if p.IsZero() {
		return densepoly.NewZ(), nil
	}
	if p.LowDegree().Sign() < 0 {
		return nil, fmt.Errorf("spoly: ToDense: Laurent polynomial has no dense representation: %w", ErrInvariant)
	}
	deg := p.Degree()
	if !deg.IsInt64() || deg.Int64() > maxDenseDegree {
		return nil, fmt.Errorf("spoly: ToDense: degree %s exceeds dense limit: %w", deg, ErrInvariant)
	}
	n := int(deg.Int64()) + 1
	coeffs := make([]*big.Int, n)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	for i := 0; i < p.Terms(); i++ {
		t, _ := p.GetTerm(i)
		coeffs[t.Exp.Int64()] = t.Coeff
	}
	return densepoly.ZFromBigInts(coeffs), nil
}

// FromDense implements poly_from_dense (spec.md section 6): builds a
// sparse Poly from a dense integer polynomial, dropping zero
// coefficients.
func FromDense(dp *densepoly.Z) *Poly {
	p := New(0, false)
	for i := 0; i <= dp.Degree(); i++ {
		c := dp.Coeff(i)
		if c.Sign() != 0 {
			p.terms = append(p.terms, Term{Coeff: c, Exp: big.NewInt(int64(i))})
		}
	}
	// dense storage is ascending by degree; Poly invariant is descending.
	for l, r := 0, len(p.terms)-1; l < r; l, r = l+1, r-1 {
		p.terms[l], p.terms[r] = p.terms[r], p.terms[l]
	}
	return p
}
