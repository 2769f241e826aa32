package densepoly

import "math/big"

// Z is a dense polynomial over Z, coefficients ascending by degree. The
// trailing coefficient, if any, is always nonzero.
type Z struct {
	coeffs []big.Int
}

// NewZ returns the zero polynomial.
func NewZ() *Z { return &Z{} }

// ZFromBigInts builds a Z from coefficients ascending by degree.
func ZFromBigInts(coeffs []*big.Int) *Z {
	z := &Z{coeffs: make([]big.Int, len(coeffs))}
	for i, c := range coeffs {
		z.coeffs[i].Set(c)
	}
	z.trim()
	return z
}

func (z *Z) trim() {
	n := len(z.coeffs)
	for n > 0 && z.coeffs[n-1].Sign() == 0 {
		n--
	}
	z.coeffs = z.coeffs[:n]
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (z *Z) Degree() int { return len(z.coeffs) - 1 }

// IsZero reports whether z is the zero polynomial.
func (z *Z) IsZero() bool { return len(z.coeffs) == 0 }

// Coeff returns the coefficient of x^i (zero if out of range).
func (z *Z) Coeff(i int) *big.Int {
	if i < 0 || i >= len(z.coeffs) {
		return new(big.Int)
	}
	return new(big.Int).Set(&z.coeffs[i])
}

// Clone returns a deep copy.
func (z *Z) Clone() *Z {
	c := &Z{coeffs: make([]big.Int, len(z.coeffs))}
	for i := range z.coeffs {
		c.coeffs[i].Set(&z.coeffs[i])
	}
	return c
}

// Add returns z + other.
func (z *Z) Add(other *Z) *Z {
	n := len(z.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	r := &Z{coeffs: make([]big.Int, n)}
	for i := 0; i < n; i++ {
		r.coeffs[i].Add(z.Coeff(i), other.Coeff(i))
	}
	r.trim()
	return r
}

// Neg returns -z.
func (z *Z) Neg() *Z {
	r := &Z{coeffs: make([]big.Int, len(z.coeffs))}
	for i := range z.coeffs {
		r.coeffs[i].Neg(&z.coeffs[i])
	}
	return r
}

// Sub returns z - other.
func (z *Z) Sub(other *Z) *Z { return z.Add(other.Neg()) }

// ScalarMul returns c*z.
func (z *Z) ScalarMul(c *big.Int) *Z {
	r := &Z{coeffs: make([]big.Int, len(z.coeffs))}
	for i := range z.coeffs {
		r.coeffs[i].Mul(&z.coeffs[i], c)
	}
	r.trim()
	return r
}

// Mul returns z * other via schoolbook multiplication.
func (z *Z) Mul(other *Z) *Z {
	if z.IsZero() || other.IsZero() {
		return NewZ()
	}
	r := &Z{coeffs: make([]big.Int, len(z.coeffs)+len(other.coeffs)-1)}
	tmp := new(big.Int)
	for i := range z.coeffs {
		if z.coeffs[i].Sign() == 0 {
			continue
		}
		for j := range other.coeffs {
			tmp.Mul(&z.coeffs[i], &other.coeffs[j])
			r.coeffs[i+j].Add(&r.coeffs[i+j], tmp)
		}
	}
	r.trim()
	return r
}

// Evaluate returns z(a) via Horner's method, exactly (no modular
// reduction) — spec.md section 6's "evaluate(P, a)" contract for the
// integer dense-poly collaborator.
func (z *Z) Evaluate(a *big.Int) *big.Int {
	result := new(big.Int)
	for i := len(z.coeffs) - 1; i >= 0; i-- {
		result.Mul(result, a)
		result.Add(result, &z.coeffs[i])
	}
	return result
}

// Reduce maps z's coefficients mod p, producing a Mod. Spec.md section
// 4.1 calls this path out explicitly for sparse-to-dense-mod reduction
// (rem_cyc_nmod); it is also the bridge a caller uses to move a dense
// integer polynomial into the BP/SP evaluation domain.
func (z *Z) Reduce(p *big.Int) *Mod {
	m := NewMod(p)
	m.coeffs = make([]big.Int, len(z.coeffs))
	for i := range z.coeffs {
		m.coeffs[i].Mod(&z.coeffs[i], p)
	}
	m.trim()
	return m
}

// MaxAbsBits returns the bit-length of the largest-magnitude coefficient
// (the polynomial's "height" in bits).
func (z *Z) MaxAbsBits() int {
	maxBits := 0
	for i := range z.coeffs {
		if b := z.coeffs[i].BitLen(); b > maxBits {
			maxBits = b
		}
	}
	return maxBits
}
