package rand

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// FastHash returns a cheap, non-cryptographic 64-bit fingerprint of a
// sequence of residues (the first 8 bytes of a BLAKE3 digest of their
// little-endian encoding). It carries no uniqueness or security guarantee
// beyond "collisions are rare in practice". Neither the sumset estimator
// nor the SP engine calls it; both compare residues and images exactly.
func FastHash(residues []uint64) uint64 {
	h := blake3.New()
	var buf [8]byte
	for _, r := range residues {
		binary.LittleEndian.PutUint64(buf[:], r)
		h.Write(buf[:])
	}
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}
