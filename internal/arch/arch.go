// Package arch picks machine-word-dependent constants for the small-primes
// interpolation engine, the way ring/modular_reduction.go picks Barrett and
// Montgomery reduction parameters relative to the host's native word size.
package arch

import "github.com/klauspost/cpuid/v2"

// WordBits is the number of usable bits in a "machine word" coefficient
// modulus for the SP engine's dense regime (spec.md 4.2: "coefficient
// modulus bits set to the machine word limit less one").
//
// When cpuid reports BMI2 or AVX2, a 62-bit limb is used, keeping
// Barrett products inside a uint64 with one bit of slack for carries. On
// every other host (including non-x86 hosts, where cpuid reports neither)
// it falls back to 31-bit limbs so a product of two residues never
// overflows a uint64 even without a widening multiply instruction.
func WordBits() int {
	if hasFastWideMul() {
		return 62
	}
	return 31
}

func hasFastWideMul() bool {
	// math/bits.Mul64 is always correct; it is single-instruction-fast on
	// any host with a widening multiply, which BMI2 or plain AVX2-capable
	// amd64 parts always have. cpuid.CPU.Supports reports false (rather
	// than panicking) on hosts where the feature doesn't apply, so this
	// degrades gracefully on non-x86 builds.
	return cpuid.CPU.Supports(cpuid.BMI2) || cpuid.CPU.Supports(cpuid.AVX2)
}
