// Package rand provides the "random-state" object consumed by spoly's
// probabilistic routines (sumset, mul_OS, sp_basis_init's diversification
// shift). It is grounded on ring/prng.go's CRPGenerator: a keyed stream
// cipher clocked deterministically, so that replaying the same state from
// the same clock reproduces the same sequence of draws (spec.md section 5:
// "calling them twice with the same state produces the same output").
package rand

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
	"math/bits"

	"golang.org/x/crypto/blake2b"
)

// State is a keyed, clockable deterministic random-state. The zero value
// is not usable; construct with New or NewKeyed.
type State struct {
	xof   blake2b.XOF
	key   []byte
	clock uint64
}

// New creates a random-state seeded from the OS CSPRNG. Two States created
// this way draw independent sequences.
func New() *State {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		panic("rand: failed to seed from crypto/rand: " + err.Error())
	}
	return NewKeyed(key)
}

// NewKeyed creates a random-state deterministically seeded by key. Two
// States constructed with the same key draw identical sequences, which is
// what lets callers replay a sumset/mul_OS run exactly (spec.md section 5).
func NewKeyed(key []byte) *State {
	s := &State{key: append([]byte(nil), key...)}
	s.reset()
	return s
}

func (s *State) reset() {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, s.key)
	if err != nil {
		panic("rand: blake2b.NewXOF: " + err.Error())
	}
	s.xof = xof
	s.clock = 0
}

// Clock returns the number of 8-byte words drawn so far.
func (s *State) Clock() uint64 { return s.clock }

// SetClock rewinds the stream to the start and re-draws up to word n,
// discarding the output. Mirrors CRPGenerator.SetClock.
func (s *State) SetClock(n uint64) {
	if n < s.clock {
		s.reset()
	}
	for s.clock < n {
		s.drawWord()
	}
}

func (s *State) drawWord() uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(s.xof, buf[:]); err != nil {
		panic("rand: xof read: " + err.Error())
	}
	s.clock++
	return binary.BigEndian.Uint64(buf[:])
}

// Uint64 draws a uniformly random uint64.
func (s *State) Uint64() uint64 { return s.drawWord() }

// Intn draws a uniform value in [0, n). Panics if n <= 0.
func (s *State) Intn(n int) int {
	if n <= 0 {
		panic("rand: Intn called with n <= 0")
	}
	return int(s.uint64n(uint64(n)))
}

func (s *State) uint64n(n uint64) uint64 {
	// Lemire's method for unbiased bounded draws.
	hi, lo := bits.Mul64(s.drawWord(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(s.drawWord(), n)
		}
	}
	return hi
}

// BigInt draws a uniform integer in [0, max). Panics if max is not
// positive.
func (s *State) BigInt(max *big.Int) *big.Int {
	if max.Sign() <= 0 {
		panic("rand: BigInt called with non-positive bound")
	}
	bitLen := max.BitLen()
	byteLen := (bitLen + 7) / 8
	buf := make([]byte, byteLen)
	for {
		for i := 0; i < byteLen; i += 8 {
			w := s.drawWord()
			end := i + 8
			if end > byteLen {
				end = byteLen
			}
			var tmp [8]byte
			binary.BigEndian.PutUint64(tmp[:], w)
			copy(buf[i:end], tmp[:end-i])
		}
		z := new(big.Int).SetBytes(buf)
		// mask off any high bits beyond bitLen so the loop terminates
		// quickly in expectation (same rejection-sampling approach
		// crypto/rand.Int uses).
		excess := byteLen*8 - bitLen
		if excess > 0 {
			z.Rsh(z, uint(excess))
		}
		if z.Cmp(max) < 0 {
			return z
		}
	}
}

// Bool draws a single random bit.
func (s *State) Bool() bool { return s.drawWord()&1 == 1 }
