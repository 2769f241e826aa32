// Package bigint is the core's arbitrary-precision integer collaborator
// (spec.md section 6, "Consumed" integer interface I). It is a thin
// wrapper over math/big.Int, grounded on ring/int.go's Int type: the
// teacher's own big-integer type is itself such a wrapper, so this
// package keeps the teacher's method-call shape instead of reaching for a
// third-party bignum library (none appears anywhere in the retrieval
// pack; see DESIGN.md).
package bigint

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Int is an arbitrary-precision signed integer.
type Int struct {
	v big.Int
}

// New returns a zero-valued Int.
func New() *Int { return new(Int) }

// FromInt64 returns an Int with value n.
func FromInt64(n int64) *Int {
	i := new(Int)
	i.v.SetInt64(n)
	return i
}

// FromUint64 returns an Int with value n.
func FromUint64(n uint64) *Int {
	i := new(Int)
	i.v.SetUint64(n)
	return i
}

// FromBig returns an Int holding a copy of z's value; later changes to z
// do not affect it.
func FromBig(z *big.Int) *Int {
	i := new(Int)
	i.v.Set(z)
	return i
}

// Big returns the underlying *big.Int. The caller must treat it as
// read-only.
func (i *Int) Big() *big.Int { return &i.v }

// Clone returns a deep copy.
func (i *Int) Clone() *Int {
	c := new(Int)
	c.v.Set(&i.v)
	return c
}

func (i *Int) String() string { return i.v.String() }

// Sign returns -1, 0, or 1.
func (i *Int) Sign() int { return i.v.Sign() }

// IsZero reports whether i is zero.
func (i *Int) IsZero() bool { return i.v.Sign() == 0 }

// Cmp compares i to j.
func (i *Int) Cmp(j *Int) int { return i.v.Cmp(&j.v) }

// Add sets i = a + b and returns i.
func (i *Int) Add(a, b *Int) *Int { i.v.Add(&a.v, &b.v); return i }

// Sub sets i = a - b and returns i.
func (i *Int) Sub(a, b *Int) *Int { i.v.Sub(&a.v, &b.v); return i }

// Mul sets i = a * b and returns i.
func (i *Int) Mul(a, b *Int) *Int { i.v.Mul(&a.v, &b.v); return i }

// Neg sets i = -a and returns i.
func (i *Int) Neg(a *Int) *Int { i.v.Neg(&a.v); return i }

// Quo sets i = trunc(a / b) and returns i. Panics on division by zero.
func (i *Int) Quo(a, b *Int) *Int { i.v.Quo(&a.v, &b.v); return i }

// Mod sets i to the Euclidean remainder of a mod m, always in [0, m).
// Panics if m <= 0.
func (i *Int) Mod(a, m *Int) *Int { i.v.Mod(&a.v, &m.v); return i }

// Center reduces i modulo m into the symmetric range (-m/2, m/2], matching
// spec.md's "reduced to the symmetric range" coefficient-recovery step
// (sections 4.5, 4.3).
func (i *Int) Center(m *Int) *Int {
	i.v.Mod(&i.v, &m.v)
	half := new(big.Int).Rsh(&m.v, 1)
	if i.v.Cmp(half) > 0 {
		i.v.Sub(&i.v, &m.v)
	}
	return i
}

// PowMod sets i = a^b mod m and returns i.
func (i *Int) PowMod(a, b, m *Int) *Int {
	i.v.Exp(&a.v, &b.v, &m.v)
	return i
}

// InvMod sets i = a^-1 mod m and returns i, or returns nil if a has no
// inverse mod m (i.e. gcd(a, m) != 1).
func (i *Int) InvMod(a, m *Int) *Int {
	if i.v.ModInverse(&a.v, &m.v) == nil {
		return nil
	}
	return i
}

// BitLen returns the number of bits in the absolute value of i (0 for
// zero).
func (i *Int) BitLen() int { return i.v.BitLen() }

// Lsh sets i = a << n and returns i.
func (i *Int) Lsh(a *Int, n uint) *Int { i.v.Lsh(&a.v, n); return i }

// Rsh sets i = a >> n and returns i.
func (i *Int) Rsh(a *Int, n uint) *Int { i.v.Rsh(&a.v, n); return i }

// Int64 returns the low 64 bits of i as an int64 (undefined overflow
// behavior matches math/big.Int.Int64).
func (i *Int) Int64() int64 { return i.v.Int64() }

// Uint64 returns the low 64 bits of i as a uint64.
func (i *Int) Uint64() uint64 { return i.v.Uint64() }

// ProbablyPrime reports whether i is probably prime, running n
// Miller-Rabin rounds beyond the deterministic small-prime trial
// divisions math/big always performs.
func (i *Int) ProbablyPrime(n int) bool { return i.v.ProbablyPrime(n) }

// RandPrime returns a random prime with exactly bits bits, using
// crypto/rand for entropy. Mirrors ring's reliance on crypto-grade
// randomness for modulus generation.
func RandPrime(bits int) (*Int, error) {
	p, err := rand.Prime(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("bigint: RandPrime(%d): %w", bits, err)
	}
	return FromBig(p), nil
}

// CRT solves x = a1 (mod m1), x = a2 (mod m2) for x in [0, m1*m2), given
// m1 and m2 coprime. It is the two-modulus building block spec.md section
// 6 calls out explicitly; Comb (below) folds it over an arbitrary number
// of moduli, which is how the SP engine's per-monomial exponent/coefficient
// recovery (section 4.6) reaches it.
func CRT(a1, m1, a2, m2 *Int) (*Int, error) {
	// x = a1 + m1 * ((a2 - a1) * m1^-1 mod m2)
	m1InvM2 := new(big.Int).ModInverse(&m1.v, &m2.v)
	if m1InvM2 == nil {
		return nil, fmt.Errorf("bigint: CRT: moduli %s and %s are not coprime", m1, m2)
	}
	diff := new(big.Int).Sub(&a2.v, &a1.v)
	t := new(big.Int).Mul(diff, m1InvM2)
	t.Mod(t, &m2.v)
	x := new(big.Int).Mul(t, &m1.v)
	x.Add(x, &a1.v)
	modulus := new(big.Int).Mul(&m1.v, &m2.v)
	x.Mod(x, modulus)
	return FromBig(x), nil
}

// Comb incrementally folds residues into a CRT reconstruction across many
// pairwise-coprime moduli, grounded on ring/ring_context.go's
// CrtReconstruction precomputation (there fixed to a static modulus set;
// here the residues stream in as rounds of the SP engine complete, so
// Comb keeps a running (value, modulus) pair rather than precomputing all
// CRT coefficients up front).
type Comb struct {
	value   Int
	modulus Int
}

// NewComb returns an empty comb (value 0, modulus 1).
func NewComb() *Comb {
	c := &Comb{}
	c.modulus.v.SetInt64(1)
	return c
}

// Add folds in a new residue a (mod m), m assumed coprime to the modulus
// accumulated so far. Returns an error if it is not.
func (c *Comb) Add(a, m *Int) error {
	if c.modulus.v.Sign() == 0 || c.modulus.v.Cmp(big.NewInt(1)) == 0 {
		c.value.v.Mod(&a.v, &m.v)
		c.modulus.v.Set(&m.v)
		return nil
	}
	x, err := CRT(&c.value, &c.modulus, a, m)
	if err != nil {
		return err
	}
	c.value.v.Set(&x.v)
	c.modulus.v.Mul(&c.modulus.v, &m.v)
	return nil
}

// Value returns the reconstructed residue in [0, Modulus()).
func (c *Comb) Value() *Int { return c.value.Clone() }

// Modulus returns the product of all moduli folded in so far.
func (c *Comb) Modulus() *Int { return c.modulus.Clone() }

// Centered returns Value() mapped into the symmetric range
// (-Modulus()/2, Modulus()/2].
func (c *Comb) Centered() *Int {
	return c.value.Clone().Center(&c.modulus)
}
