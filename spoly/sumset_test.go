package spoly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsroche/spoly/rand"
)

func TestSumsetScenarioS4(t *testing.T) {
	rng := rand.New()
	f := mkPoly(1, 5, 1, 3)
	g := mkPoly(1, 2, 1, 0)

	got, status := Sumset(rng, f, g)
	require.Equal(t, StatusOK, status)

	// sums: 5+2=7, 5+0=5, 3+2=5, 3+0=3 -> distinct {3,5,7}. (spec.md's
	// own scenario S4 example lists a spurious extra "2" among the
	// sums; there is no pair of exponents from f and g summing to 2.)
	want := []int64{3, 5, 7}
	require.Len(t, got, len(want))
	for i, w := range want {
		require.Equal(t, 0, got[i].Cmp(bi(w)))
	}
}
