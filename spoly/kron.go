package spoly

import "math/big"

// KronPack packs a multivariate exponent vector (e_1..e_n) into a single
// big-integer exponent via shifts (spec.md section 4.9), for generating
// multivariate-flavored test inputs only. shiftBits is the per-variable
// field width; packs never overflow into adjacent fields as long as
// every e_i < 2^shiftBits.
func KronPack(exps []*big.Int, shiftBits uint) *big.Int {
	result := new(big.Int)
	for i := len(exps) - 1; i >= 0; i-- {
		result.Lsh(result, shiftBits)
		result.Add(result, exps[i])
	}
	return result
}

// KronUnpack reverses KronPack, extracting n fields of width shiftBits.
func KronUnpack(packed *big.Int, nvars int, shiftBits uint) []*big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), shiftBits), big.NewInt(1))
	out := make([]*big.Int, nvars)
	cur := new(big.Int).Set(packed)
	for i := 0; i < nvars; i++ {
		out[i] = new(big.Int).And(cur, mask)
		cur.Rsh(cur, shiftBits)
	}
	return out
}
