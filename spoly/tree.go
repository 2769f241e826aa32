package spoly

import (
	"math/big"

	"github.com/dsroche/spoly/densepoly"
)

// evalXover mirrors spec.md section 9's EVAL_XOVER = 32 constant: below
// this many evaluation points, a direct per-point Horner evaluation beats
// building a subproduct tree.
const evalXover = 32

// transpVandXover mirrors TVAND_XOVER = 20 (spec.md section 9): below
// this many points, the naive O(L*blen) transposed-Vandermonde forward
// beats the tree-based algorithm.
const transpVandXover = 20

// SubproductTree is a balanced binary tree of dense polynomials mod p,
// stored as a flat array of levels (spec.md section 9's "cyclic
// references and tree nodes" note, grounded on the teacher's
// preference, throughout ring/, for flat slices over pointer-linked
// structures).
type SubproductTree struct {
	p      *big.Int
	points []*big.Int
	levels [][]*densepoly.Mod
}

// BuildTree builds the subproduct tree over v_1..v_L mod p (spec.md
// section 4.3): leaves are (x - v_i); each level computes pairwise
// products of the level below.
func BuildTree(points []*big.Int, p *big.Int) *SubproductTree {
	t := &SubproductTree{p: p, points: points}
	leaves := make([]*densepoly.Mod, len(points))
	for i, v := range points {
		leaves[i] = densepoly.FromBigInts(p, []*big.Int{new(big.Int).Neg(v), big.NewInt(1)})
	}
	t.levels = append(t.levels, leaves)
	cur := leaves
	for len(cur) > 1 {
		next := make([]*densepoly.Mod, 0, (len(cur)+1)/2)
		for i := 0; i+1 < len(cur); i += 2 {
			next = append(next, cur[i].Mul(cur[i+1]))
		}
		if len(cur)%2 == 1 {
			next = append(next, cur[len(cur)-1])
		}
		t.levels = append(t.levels, next)
		cur = next
	}
	return t
}

// Root returns the top-level product polynomial R(x) = prod (x - v_i).
func (t *SubproductTree) Root() *densepoly.Mod {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Evaluate performs multipoint evaluation of A at all tree leaves
// (spec.md section 4.3): repeated remaindering from the root down to the
// leaves. Below evalXover points it evaluates directly at each point.
func (t *SubproductTree) Evaluate(a *densepoly.Mod) []*big.Int {
	if len(t.points) < evalXover {
		out := make([]*big.Int, len(t.points))
		for i, v := range t.points {
			out[i] = a.Evaluate(v)
		}
		return out
	}
	rems := t.descend(a, len(t.levels)-1, 0)
	out := make([]*big.Int, len(t.points))
	for i, r := range rems {
		out[i] = r.Coeff(0)
	}
	return out
}

// descend recurses down from level `level`, node `idx`, reducing `a`
// modulo that node's polynomial, and returns the leaf-level remainders
// in the subtree rooted there.
func (t *SubproductTree) descend(a *densepoly.Mod, level, idx int) []*densepoly.Mod {
	node := t.levels[level][idx]
	_, rem := a.DivRem(node)
	if level == 0 {
		return []*densepoly.Mod{rem}
	}
	left := 2 * idx
	right := 2*idx + 1
	if right >= len(t.levels[level-1]) {
		return t.descend(rem, level-1, left)
	}
	leftRes := t.descend(rem, level-1, left)
	rightRes := t.descend(rem, level-1, right)
	return append(leftRes, rightRes...)
}

// TranspVandermondeForward computes b_j = sum_i v_i^j * x_i mod p for
// j = 0..blen-1 (spec.md section 4.3). Below transpVandXover points, the
// naive O(L*blen) approach is used; otherwise the subproduct-tree-based
// numerator/power-series algorithm.
func TranspVandermondeForward(v []*big.Int, x []*big.Int, blen int, p *big.Int) []*big.Int {
	if len(v) < transpVandXover {
		b := make([]*big.Int, blen)
		for j := range b {
			b[j] = new(big.Int)
		}
		for i := range v {
			pw := big.NewInt(1)
			for j := 0; j < blen; j++ {
				term := new(big.Int).Mul(pw, x[i])
				b[j].Add(b[j], term)
				b[j].Mod(b[j], p)
				pw.Mul(pw, v[i])
				pw.Mod(pw, p)
			}
		}
		return b
	}

	invs := make([]*big.Int, len(v))
	for i, vi := range v {
		invs[i] = new(big.Int).ModInverse(vi, p)
	}
	tree := BuildTree(invs, p)
	root := tree.Root()

	// N(x) = sum_i (-x_i * v_i^-1) * (R(x) / (x - v_i^-1))
	num := densepoly.NewMod(p)
	for i := range invs {
		coeff := new(big.Int).Mul(x[i], invs[i])
		coeff.Neg(coeff)
		coeff.Mod(coeff, p)
		denom := densepoly.FromBigInts(p, []*big.Int{new(big.Int).Neg(invs[i]), big.NewInt(1)})
		q, _ := root.DivRem(denom)
		num = num.Add(q.ScalarMul(coeff))
	}

	// b is the power series N(x)/R(x) truncated to blen terms: with
	// u_i = v_i^-1, N/R = sum_i x_i / (1 - v_i x) = sum_j b_j x^j.
	series := powerSeriesDiv(num, root, blen, p)
	b := make([]*big.Int, blen)
	for j := 0; j < blen; j++ {
		b[j] = series.Coeff(j)
	}
	return b
}

// powerSeriesDiv computes the first n coefficients of num/den as a power
// series mod p, via the standard recurrence c_k = (num_k - sum_{i<k}
// den_i*c_{k-i}) / den_0.
func powerSeriesDiv(num, den *densepoly.Mod, n int, p *big.Int) *densepoly.Mod {
	d0inv := new(big.Int).ModInverse(den.Coeff(0), p)
	coeffs := make([]*big.Int, n)
	for k := 0; k < n; k++ {
		acc := new(big.Int).Set(num.Coeff(k))
		for i := 1; i <= k && i <= den.Degree(); i++ {
			t := new(big.Int).Mul(den.Coeff(i), coeffs[k-i])
			acc.Sub(acc, t)
		}
		acc.Mul(acc, d0inv)
		acc.Mod(acc, p)
		coeffs[k] = acc
	}
	return densepoly.FromBigInts(p, coeffs)
}

// TranspVandermondeInverse solves V(v)^T x = b for x, given v and b
// (spec.md section 4.3): tree + power-series + two more multipoint
// evaluations to get x_i = N_i / D_i, reduced to the symmetric range.
func TranspVandermondeInverse(v []*big.Int, b []*big.Int, p *big.Int) ([]*big.Int, error) {
	L := len(v)
	tree := BuildTree(v, p)
	root := tree.Root()

	revB := make([]*big.Int, len(b))
	for i, c := range b {
		revB[len(b)-1-i] = c
	}
	revPoly := densepoly.FromBigInts(p, revB)
	prod := root.Mul(revPoly)

	qCoeffs := make([]*big.Int, 0, L)
	for i := L; i < L+L && i <= prod.Degree(); i++ {
		qCoeffs = append(qCoeffs, prod.Coeff(i))
	}
	for len(qCoeffs) < L {
		qCoeffs = append(qCoeffs, new(big.Int))
	}
	q := densepoly.FromBigInts(p, qCoeffs)

	numerators := tree.Evaluate(q)
	deriv := root.Derivative()
	denominators := tree.Evaluate(deriv)

	half := new(big.Int).Rsh(p, 1)
	x := make([]*big.Int, L)
	for i := 0; i < L; i++ {
		dinv := new(big.Int).ModInverse(denominators[i], p)
		if dinv == nil {
			return nil, errNonInvertibleDenominator
		}
		xi := new(big.Int).Mul(numerators[i], dinv)
		xi.Mod(xi, p)
		if xi.Cmp(half) > 0 {
			xi.Sub(xi, p)
		}
		x[i] = xi
	}
	return x, nil
}
