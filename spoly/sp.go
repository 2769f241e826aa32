package spoly

import (
	"math/big"
	"sort"

	"github.com/dsroche/spoly/bigint"
	"github.com/dsroche/spoly/densepoly"
	"github.com/dsroche/spoly/rand"
)

// spGroup is one exponent-prime group within an SP round: one
// diversified leader slot sharing the round's (alpha, cm), and several
// non-diversified follower slots on distinct coefficient primes,
// matching spec.md section 4.6's "group leader" / "follower" roles.
type spGroup struct {
	em          *big.Int
	followerCms []*big.Int
}

// spRound bundles the shared diversification scalar/coefficient
// modulus for a round with its exponent-prime groups.
type spRound struct {
	cm     *big.Int
	alpha  *big.Int
	groups []spGroup
}

// buildSPRounds materializes basis.NumRounds rounds of fresh random
// primes, per spec.md section 4.6: "primes within one round must be
// pairwise distinct across the round."
func buildSPRounds(rng *rand.State, basis *SPBasis) ([]spRound, error) {
	rounds := make([]spRound, basis.NumRounds)
	for r := range rounds {
		cm, err := bigint.RandPrime(basis.CoefPrimeBits)
		if err != nil {
			return nil, err
		}
		alpha := new(big.Int).Add(rng.BigInt(new(big.Int).Sub(cm.Big(), big.NewInt(2))), big.NewInt(2))

		used := map[string]bool{cm.String(): true}
		groups := make([]spGroup, basis.GroupsPerRnd)
		for g := range groups {
			em, err := distinctPrime(basis.ExpPrimeBits, used)
			if err != nil {
				return nil, err
			}
			followerCms := make([]*big.Int, basis.CoeffsPerRnd)
			for c := range followerCms {
				fcm, err := distinctPrime(basis.CoefPrimeBits, used)
				if err != nil {
					return nil, err
				}
				followerCms[c] = fcm
			}
			groups[g] = spGroup{em: em, followerCms: followerCms}
		}
		rounds[r] = spRound{cm: cm.Big(), alpha: alpha, groups: groups}
	}
	return rounds, nil
}

func distinctPrime(bits int, used map[string]bool) (*big.Int, error) {
	for {
		p, err := bigint.RandPrime(bits)
		if err != nil {
			return nil, err
		}
		if !used[p.String()] {
			used[p.String()] = true
			return p.Big(), nil
		}
	}
}

// diversify scales each coefficient of p by alpha^e mod cm (spec.md
// section 4.6's diversification rationale).
func diversify(p *Poly, alpha, cm *big.Int) *Poly {
	out := New(p.Terms(), p.laurent)
	for i := 0; i < p.Terms(); i++ {
		t, _ := p.GetTerm(i)
		var pw *big.Int
		if t.Exp.Sign() < 0 {
			inv := new(big.Int).ModInverse(alpha, cm)
			pw = new(big.Int).Exp(inv, new(big.Int).Neg(t.Exp), cm)
		} else {
			pw = new(big.Int).Exp(alpha, t.Exp, cm)
		}
		c := new(big.Int).Mul(t.Coeff, pw)
		out.terms = append(out.terms, Term{Coeff: c, Exp: new(big.Int).Set(t.Exp)})
	}
	return out
}

// slotVector computes the fixed dense image Ẽ_i(x) for one slot (spec.md
// section 3): apply diversification (a no-op when alpha is 1, i.e. for
// followers), then rem_cyc_nmod with cyclic modulus em over field cm.
// p is the original polynomial sp_eval was called with; the result
// depends only on p, em, cm and alpha, never on any later recovery state.
func slotVector(p *Poly, em *big.Int, cm *big.Int, alpha *big.Int) *densepoly.Mod {
	src := p
	if alpha.Cmp(big.NewInt(1)) != 0 {
		src = diversify(p, alpha, cm)
	}
	emInt := int(em.Int64())
	dense, err := RemCycNmod(src, emInt, cm)
	if err != nil {
		return densepoly.NewMod(cm)
	}
	return dense
}

type expImage struct {
	dominant *big.Int
	residue  *big.Int
	modulus  *big.Int
}

type coefImage struct {
	dominant *big.Int
	residue  *big.Int
	modulus  *big.Int
}

// collectImages walks every group in the round over p, producing the
// round's fixed exponent- and coefficient-image lists (spec.md section
// 3/4.6) exactly once. These lists are what sp_eval freezes into an
// SPEval; nothing touches p again afterward.
func collectImages(round spRound, p *Poly) ([]expImage, []coefImage) {
	var expImages []expImage
	var coefImages []coefImage
	for _, g := range round.groups {
		leaderVec := slotVector(p, g.em, round.cm, round.alpha)
		for j := 0; j <= leaderVec.Degree(); j++ {
			r := leaderVec.Coeff(j)
			if r.Sign() == 0 {
				continue
			}
			expImages = append(expImages, expImage{
				dominant: r,
				residue:  big.NewInt(int64(j)),
				modulus:  g.em,
			})
			for _, fcm := range g.followerCms {
				followerVec := slotVector(p, g.em, fcm, big.NewInt(1))
				coefImages = append(coefImages, coefImage{
					dominant: r,
					residue:  followerVec.Coeff(j),
					modulus:  fcm,
				})
			}
		}
	}
	return expImages, coefImages
}

// matchImages implements spec.md section 4.6's two-pointer walk: sort
// both lists by dominant_coeff, then for every value meeting both
// quorum thresholds, CRT the matched images to recover (e, c).
func matchImages(expImages []expImage, coefImages []coefImage, eimgNeeded, cimgNeeded int) []Term {
	sort.Slice(expImages, func(i, j int) bool { return expImages[i].dominant.Cmp(expImages[j].dominant) < 0 })
	sort.Slice(coefImages, func(i, j int) bool { return coefImages[i].dominant.Cmp(coefImages[j].dominant) < 0 })

	var out []Term
	i, j := 0, 0
	for i < len(expImages) {
		i2 := i + 1
		for i2 < len(expImages) && expImages[i2].dominant.Cmp(expImages[i].dominant) == 0 {
			i2++
		}
		dominant := expImages[i].dominant
		for j < len(coefImages) && coefImages[j].dominant.Cmp(dominant) < 0 {
			j++
		}
		j2 := j
		for j2 < len(coefImages) && coefImages[j2].dominant.Cmp(dominant) == 0 {
			j2++
		}

		expCount := i2 - i
		coefCount := j2 - j
		if expCount >= eimgNeeded && coefCount >= cimgNeeded {
			expComb := bigint.NewComb()
			for k := i; k < i2; k++ {
				if err := expComb.Add(bigint.FromBig(expImages[k].residue), bigint.FromBig(expImages[k].modulus)); err != nil {
					continue
				}
			}
			coefComb := bigint.NewComb()
			for k := j; k < j2; k++ {
				if err := coefComb.Add(bigint.FromBig(coefImages[k].residue), bigint.FromBig(coefImages[k].modulus)); err != nil {
					continue
				}
			}
			e := expComb.Value().Big()
			c := coefComb.Centered().Big()
			if c.Sign() != 0 {
				out = append(out, Term{Coeff: new(big.Int).Set(c), Exp: new(big.Int).Set(e)})
			}
		}

		i = i2
		j = j2
	}
	return out
}

// spRoundEval holds one round's frozen exponent- and coefficient-image
// lists, computed once against the original polynomial at sp_eval time.
type spRoundEval struct {
	expImages  []expImage
	coefImages []coefImage
}

// SPEval is the SP engine's evaluation-space value (spec.md section 3's
// "sp_eval"): for every round, the exponent- and coefficient-image lists
// read off the per-slot dense images Ẽ_i(x) (degree < em_i over Z/cm_iZ),
// derived from P exactly once. The dense images themselves are not kept.
// SPInterp must recover P from these lossy images alone; it never sees P
// or any residual derived from it again.
type SPEval struct {
	rounds []spRoundEval
}

// SPEvalRun implements sp_eval: draws the round/group primes and
// diversification scalars, then evaluates every slot's dense image
// against p, freezing the result. p is not retained.
func SPEvalRun(rng *rand.State, basis *SPBasis, p *Poly) (*SPEval, error) {
	if basis.Regime == SPEmpty {
		return &SPEval{}, nil
	}
	rounds, err := buildSPRounds(rng, basis)
	if err != nil {
		return nil, err
	}
	ev := &SPEval{rounds: make([]spRoundEval, len(rounds))}
	for i, round := range rounds {
		expImages, coefImages := collectImages(round, p)
		ev.rounds[i] = spRoundEval{expImages: expImages, coefImages: coefImages}
	}
	return ev, nil
}

// SPInterp implements the SP interpolation engine (C7, spec.md section
// 4.6): round by round, CRT-matches the frozen exponent/coefficient
// images recorded by sp_eval and accumulates the recovered monomials,
// succeeding once as many distinct terms as the basis expects have been
// found. It consumes only ev's stored images; it never re-derives data
// from, or subtracts from, the original polynomial.
func SPInterp(basis *SPBasis, ev *SPEval) (*Poly, Status) {
	if basis.Regime == SPEmpty {
		return New(0, basis.Params.Laurent), StatusOK
	}

	out := New(basis.Params.Terms, basis.Params.Laurent)
	found := 0
	for _, round := range ev.rounds {
		terms := matchImages(round.expImages, round.coefImages, basis.EimgNeeded, basis.CimgNeeded)
		for _, t := range terms {
			if out.GetCoeff(t.Exp).Sign() == 0 {
				found++
			}
			_ = out.SetCoeff(t.Coeff, t.Exp)
		}
		if basis.Params.Terms > 0 && found >= basis.Params.Terms {
			break
		}
	}
	out.normaliseSelf()
	if out.Terms() == basis.Params.Terms {
		return out, StatusOK
	}
	return out, StatusIncomplete
}
