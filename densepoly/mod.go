// Package densepoly is the core's dense-polynomial collaborator (spec.md
// section 6, "Consumed" dense-poly interfaces). Mod implements dense
// polynomials over Z/pZ; Z (in z.go) implements dense polynomials over Z.
//
// Grounded on ring/poly.go and ring/ring_poly.go's dense coefficient-vector
// representation, generalized from the teacher's fixed NTT-friendly
// uint64 modulus to an arbitrary-precision *big.Int modulus: this core's
// primes are sized to a caller-chosen height bound H, not a fixed machine
// word, so coefficients must be big.Int throughout.
package densepoly

import (
	"fmt"
	"math/big"
)

// Mod is a dense polynomial over Z/pZ, coefficients ascending by degree
// (index i holds the coefficient of x^i). The trailing coefficient, if
// any, is always nonzero; the zero polynomial is an empty slice.
type Mod struct {
	p      *big.Int
	coeffs []big.Int
}

// NewMod returns the zero polynomial over Z/pZ.
func NewMod(p *big.Int) *Mod {
	return &Mod{p: new(big.Int).Set(p)}
}

// FromBigInts builds a Mod from coefficients ascending by degree, each
// reduced mod p.
func FromBigInts(p *big.Int, coeffs []*big.Int) *Mod {
	m := NewMod(p)
	m.coeffs = make([]big.Int, len(coeffs))
	for i, c := range coeffs {
		m.coeffs[i].Mod(c, p)
	}
	m.trim()
	return m
}

// Modulus returns the poly's modulus.
func (m *Mod) Modulus() *big.Int { return m.p }

func (m *Mod) trim() {
	n := len(m.coeffs)
	for n > 0 && m.coeffs[n-1].Sign() == 0 {
		n--
	}
	m.coeffs = m.coeffs[:n]
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (m *Mod) Degree() int { return len(m.coeffs) - 1 }

// IsZero reports whether m is the zero polynomial.
func (m *Mod) IsZero() bool { return len(m.coeffs) == 0 }

// Coeff returns the coefficient of x^i (zero if i is out of range).
func (m *Mod) Coeff(i int) *big.Int {
	if i < 0 || i >= len(m.coeffs) {
		return new(big.Int)
	}
	return new(big.Int).Set(&m.coeffs[i])
}

// Clone returns a deep copy.
func (m *Mod) Clone() *Mod {
	c := NewMod(m.p)
	c.coeffs = make([]big.Int, len(m.coeffs))
	for i := range m.coeffs {
		c.coeffs[i].Set(&m.coeffs[i])
	}
	return c
}

// Monic returns a copy of m scaled so its leading coefficient is 1. Panics
// on the zero polynomial.
func (m *Mod) Monic() *Mod {
	if m.IsZero() {
		panic("densepoly: Monic of zero polynomial")
	}
	lead := new(big.Int).Set(&m.coeffs[len(m.coeffs)-1])
	inv := new(big.Int).ModInverse(lead, m.p)
	return m.ScalarMul(inv)
}

// ScalarMul returns c*m mod p.
func (m *Mod) ScalarMul(c *big.Int) *Mod {
	r := NewMod(m.p)
	r.coeffs = make([]big.Int, len(m.coeffs))
	for i := range m.coeffs {
		r.coeffs[i].Mul(&m.coeffs[i], c)
		r.coeffs[i].Mod(&r.coeffs[i], m.p)
	}
	r.trim()
	return r
}

// Add returns m + other mod p.
func (m *Mod) Add(other *Mod) *Mod {
	n := len(m.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	r := NewMod(m.p)
	r.coeffs = make([]big.Int, n)
	for i := 0; i < n; i++ {
		r.coeffs[i].Add(m.Coeff(i), other.Coeff(i))
		r.coeffs[i].Mod(&r.coeffs[i], m.p)
	}
	r.trim()
	return r
}

// Sub returns m - other mod p.
func (m *Mod) Sub(other *Mod) *Mod {
	return m.Add(other.ScalarMul(big.NewInt(-1)))
}

// Mul returns m * other mod p via schoolbook multiplication. The core's
// dense operands are small (subproduct-tree node widths, Prony
// polynomials of degree <= T), so no crossover to a faster algorithm is
// needed; the corpus's own NTT multiply (ring/ntt.go) is specialized to
// fixed power-of-two-friendly moduli and does not generalize to the
// arbitrary odd primes this core constructs.
func (m *Mod) Mul(other *Mod) *Mod {
	if m.IsZero() || other.IsZero() {
		return NewMod(m.p)
	}
	r := NewMod(m.p)
	r.coeffs = make([]big.Int, len(m.coeffs)+len(other.coeffs)-1)
	tmp := new(big.Int)
	for i := range m.coeffs {
		if m.coeffs[i].Sign() == 0 {
			continue
		}
		for j := range other.coeffs {
			tmp.Mul(&m.coeffs[i], &other.coeffs[j])
			r.coeffs[i+j].Add(&r.coeffs[i+j], tmp)
		}
	}
	for i := range r.coeffs {
		r.coeffs[i].Mod(&r.coeffs[i], m.p)
	}
	r.trim()
	return r
}

// Sqr returns m*m mod p.
func (m *Mod) Sqr() *Mod { return m.Mul(m) }

// DivRem returns (q, r) such that m = q*divisor + r mod p, deg(r) <
// deg(divisor). Panics if divisor is zero.
func (m *Mod) DivRem(divisor *Mod) (q, r *Mod) {
	if divisor.IsZero() {
		panic("densepoly: DivRem by zero polynomial")
	}
	dDeg := divisor.Degree()
	leadInv := new(big.Int).ModInverse(&divisor.coeffs[dDeg], m.p)
	if leadInv == nil {
		panic("densepoly: divisor's leading coefficient is not invertible mod p")
	}

	rem := m.Clone()
	qCoeffs := make([]big.Int, 0)
	for rem.Degree() >= dDeg {
		shift := rem.Degree() - dDeg
		coef := new(big.Int).Mul(&rem.coeffs[rem.Degree()], leadInv)
		coef.Mod(coef, m.p)

		for len(qCoeffs) <= shift {
			qCoeffs = append(qCoeffs, big.Int{})
		}
		qCoeffs[shift].Set(coef)

		// rem -= coef * x^shift * divisor
		tmp := new(big.Int)
		for i, dc := range divisor.coeffs {
			tmp.Mul(&dc, coef)
			idx := i + shift
			rem.coeffs[idx].Sub(&rem.coeffs[idx], tmp)
			rem.coeffs[idx].Mod(&rem.coeffs[idx], m.p)
		}
		rem.trim()
	}
	q = NewMod(m.p)
	q.coeffs = qCoeffs
	q.trim()
	return q, rem
}

// Rem returns m mod divisor.
func (m *Mod) Rem(divisor *Mod) *Mod {
	_, r := m.DivRem(divisor)
	return r
}

// Gcd returns the monic greatest common divisor of m and other via the
// Euclidean algorithm, grounded on
// original_source/fmpz_spoly/bp_interp.c's _fmpz_mod_poly_binary_roots,
// which calls this exact operation (_fmpz_mod_poly_gcd) to split a
// polynomial's even- and odd-power roots.
func (m *Mod) Gcd(other *Mod) *Mod {
	a, b := m.Clone(), other.Clone()
	for !b.IsZero() {
		_, r := a.DivRem(b)
		a, b = b, r
	}
	if a.IsZero() {
		return a
	}
	return a.Monic()
}

// Derivative returns m's formal derivative mod p.
func (m *Mod) Derivative() *Mod {
	if len(m.coeffs) <= 1 {
		return NewMod(m.p)
	}
	r := NewMod(m.p)
	r.coeffs = make([]big.Int, len(m.coeffs)-1)
	for i := 1; i < len(m.coeffs); i++ {
		r.coeffs[i-1].Mul(&m.coeffs[i], big.NewInt(int64(i)))
		r.coeffs[i-1].Mod(&r.coeffs[i-1], m.p)
	}
	r.trim()
	return r
}

// Evaluate returns m(a) mod p via Horner's method.
func (m *Mod) Evaluate(a *big.Int) *big.Int {
	result := new(big.Int)
	for i := len(m.coeffs) - 1; i >= 0; i-- {
		result.Mul(result, a)
		result.Add(result, &m.coeffs[i])
		result.Mod(result, m.p)
	}
	return result
}

// Equal reports whether m and other have identical coefficients mod p.
func (m *Mod) Equal(other *Mod) bool {
	if len(m.coeffs) != len(other.coeffs) {
		return false
	}
	for i := range m.coeffs {
		if m.coeffs[i].Cmp(&other.coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer for debugging/tests.
func (m *Mod) String() string {
	if m.IsZero() {
		return "0"
	}
	terms := make([]string, 0, len(m.coeffs))
	for i := len(m.coeffs) - 1; i >= 0; i-- {
		if m.coeffs[i].Sign() == 0 {
			continue
		}
		terms = append(terms, fmt.Sprintf("%s*x^%d", m.coeffs[i].String(), i))
	}
	s := ""
	for i, t := range terms {
		if i > 0 {
			s += " + "
		}
		s += t
	}
	return s
}

// MinPoly runs Berlekamp-Massey on the sequence b (the core's component
// C5, treated as an external collaborator per spec.md section 4.5/6) and
// returns the unique monic polynomial of least degree t such that
// sum_j coeff_j * b[i+j] == 0 mod p for every valid window i. Grounded on
// original_source/fmpz_spoly/bp_interp.c's call to
// fmpz_mod_poly_minpoly.
func MinPoly(p *big.Int, b []*big.Int) *Mod {
	// Classical Berlekamp-Massey over the field Z/pZ.
	c := NewMod(p)
	c.coeffs = []big.Int{*big.NewInt(1)} // current connection polynomial, C(x) = 1
	oldC := c.Clone()
	l := 0
	m := 1
	bCoef := big.NewInt(1)

	for n := 0; n < len(b); n++ {
		// delta = b[n] + sum_{i=1}^{l} c_i * b[n-i]
		delta := new(big.Int).Set(b[n])
		for i := 1; i <= l && i < len(c.coeffs); i++ {
			term := new(big.Int).Mul(c.Coeff(i), b[n-i])
			delta.Add(delta, term)
		}
		delta.Mod(delta, p)

		if delta.Sign() == 0 {
			m++
			continue
		}

		t := c.Clone()
		coefScale := new(big.Int).Mul(delta, new(big.Int).ModInverse(bCoef, p))
		coefScale.Mod(coefScale, p)

		// c = c - coefScale * x^m * oldC
		c = subtractShifted(c, oldC, m, coefScale, p)

		if 2*l <= n {
			l = n + 1 - l
			oldC = t
			bCoef = delta
			m = 1
		} else {
			m++
		}
	}
	// c is the connection polynomial 1 + c_1 x + ... + c_l x^l; the minimal
	// polynomial is its reversal x^l * c(1/x), which is already monic.
	rev := make([]*big.Int, l+1)
	for i := 0; i <= l; i++ {
		rev[i] = c.Coeff(l - i)
	}
	return FromBigInts(p, rev).Monic()
}

// subtractShifted computes cur - scale*x^shift*oldC mod p, the update
// step of Berlekamp-Massey's connection polynomial.
func subtractShifted(cur, oldC *Mod, shift int, scale *big.Int, p *big.Int) *Mod {
	shiftedCoeffs := make([]big.Int, len(oldC.coeffs)+shift)
	for i, c := range oldC.coeffs {
		shiftedCoeffs[i+shift].Mul(&c, scale)
		shiftedCoeffs[i+shift].Mod(&shiftedCoeffs[i+shift], p)
	}
	n := len(cur.coeffs)
	if len(shiftedCoeffs) > n {
		n = len(shiftedCoeffs)
	}
	r := NewMod(p)
	r.coeffs = make([]big.Int, n)
	for i := 0; i < n; i++ {
		var shiftedC big.Int
		if i < len(shiftedCoeffs) {
			shiftedC = shiftedCoeffs[i]
		}
		r.coeffs[i].Sub(cur.Coeff(i), &shiftedC)
		r.coeffs[i].Mod(&r.coeffs[i], p)
	}
	r.trim()
	return r
}

// DistinctLinearRoots isolates the roots of a polynomial known to split
// completely into distinct linear factors over Z/pZ, via repeated
// gcd-based equal-degree splitting (Cantor-Zassenhaus style, specialized
// to degree-1 factors). It stands in for spec.md section 6's
// "simple_roots" collaborator; nothing in this module calls it, and the
// sparse engines use spoly.BinaryRoots instead, which is asymptotically
// faster and does not need fresh randomness per split.
func (m *Mod) DistinctLinearRoots(rng interface{ BigInt(*big.Int) *big.Int }) []*big.Int {
	if m.IsZero() {
		return nil
	}
	var roots []*big.Int
	var split func(f *Mod)
	exp := new(big.Int).Sub(m.p, big.NewInt(1))
	exp.Rsh(exp, 1)
	split = func(f *Mod) {
		if f.Degree() <= 0 {
			return
		}
		if f.Degree() == 1 {
			// f = a1*x + a0, root = -a0/a1
			a1 := f.Coeff(1)
			a0 := f.Coeff(0)
			inv := new(big.Int).ModInverse(a1, m.p)
			root := new(big.Int).Mul(a0, inv)
			root.Neg(root)
			root.Mod(root, m.p)
			roots = append(roots, root)
			return
		}
		for {
			a := rng.BigInt(m.p)
			g := xPowMinusC(f, a, exp, m.p) // a^... style split poly
			gcd := f.Gcd(g)
			if gcd.Degree() > 0 && gcd.Degree() < f.Degree() {
				other := f.Clone()
				q, rem := other.DivRem(gcd)
				if !rem.IsZero() {
					continue
				}
				split(gcd)
				split(q)
				return
			}
		}
	}
	split(m.Monic())
	return roots
}

func xPowMinusC(f *Mod, a *big.Int, exp *big.Int, p *big.Int) *Mod {
	// Builds (x+a)^exp - 1 mod f, the classical equal-degree split
	// polynomial specialized to degree-1 target factors.
	base := FromBigInts(p, []*big.Int{a, big.NewInt(1)}) // x + a
	result := NewMod(p)
	result.coeffs = []big.Int{*big.NewInt(1)}
	b := base
	e := new(big.Int).Set(exp)
	two := big.NewInt(2)
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result = result.Mul(b).Rem(f)
		}
		b = b.Mul(b).Rem(f)
		e.Div(e, two)
	}
	one := FromBigInts(p, []*big.Int{big.NewInt(1)})
	return result.Sub(one)
}
