package determinize_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// specials builds an FSA using every special symbol from the start state:
//
//	0 -a/0.5-> 1, 0 -ρ/0.5-> 2, 0 -σ/0.4-> 3, 0 -φ/0.3-> 4
//	4 -b/0.5-> 5, and 1, 2, 3 -ε-> 5 (final)
func specials(t *testing.T) *vit {
	t.Helper()
	h := newFSA(6)
	arc(t, h, 0, 1, symA, 0.5)
	arc(t, h, 0, 2, symbol.Rho, 0.5)
	arc(t, h, 0, 3, symbol.Sigma, 0.4)
	arc(t, h, 0, 4, symbol.Phi, 0.3)
	arc(t, h, 4, 5, symB, 0.5)
	arc(t, h, 1, 5, eps, 1)
	arc(t, h, 2, 5, eps, 1)
	arc(t, h, 3, 5, eps, 1)

	return h
}

func TestEveryFlagCombinationIsDeterministic(t *testing.T) {
	all := determinize.EpsilonNormal | determinize.RhoNormal | determinize.PhiNormal | determinize.SigmaNormal
	for f := determinize.Flags(0); f <= all; f++ {
		t.Run(fmt.Sprintf("flags=%04b", f), func(t *testing.T) {
			d, err := determinize.Determinize(specials(t), determinize.WithSpecialSymbols(f))
			if f.Has(determinize.RhoNormal) && !f.Has(determinize.SigmaNormal) {
				require.ErrorIs(t, err, core.ErrUnsupportedInput, "σ remainder has no output label")
				return
			}
			require.NoError(t, err)
			require.True(t, determinize.IsDeterministic(d))
		})
	}
}

func TestAllSpecialWeights(t *testing.T) {
	d, err := determinize.Determinize(specials(t))
	require.NoError(t, err)
	require.Equal(t, weight.Viterbi(0.5), accepts(d, symA), "a explicit beats σ")
	require.Equal(t, weight.Viterbi(0.5), accepts(d, symB), "ρ beats σ; φ is not needed")
	require.Equal(t, weight.Viterbi(0.5), accepts(d, symC))
}

func TestSigmaWithNormalRhoRejected(t *testing.T) {
	// s -ρ/0.5-> p, s -σ/0.4-> q, p, q -ε-> f. With ρ an ordinary symbol,
	// the σ remainder and the literal ρ would share one label.
	h := newFSA(4)
	arc(t, h, 0, 1, symbol.Rho, 0.5)
	arc(t, h, 0, 2, symbol.Sigma, 0.4)
	arc(t, h, 1, 3, eps, 1)
	arc(t, h, 2, 3, eps, 1)

	_, err := determinize.Determinize(h, determinize.WithRhoNormal())
	require.ErrorIs(t, err, core.ErrUnsupportedInput)

	d, err := determinize.Determinize(h, determinize.WithRhoNormal(), determinize.WithSigmaNormal())
	require.NoError(t, err)
	require.True(t, determinize.IsDeterministic(d))
	require.Equal(t, 2, d.NumArcs(), "literal ρ and literal σ")
}

func TestNormalEpsilonAtAcceptingSubsetRejected(t *testing.T) {
	// After "a" the subset holds final 2 and state 1, which reads a literal ε.
	h := newFSA(3)
	arc(t, h, 0, 1, symA, 0.5)
	arc(t, h, 0, 2, symA, 0.25)
	arc(t, h, 1, 2, eps, 1)

	_, err := determinize.Determinize(h, determinize.WithEpsilonNormal())
	require.ErrorIs(t, err, core.ErrUnsupportedInput)

	// With ε special the two paths merge.
	d, err := determinize.Determinize(h)
	require.NoError(t, err)
	require.True(t, determinize.IsDeterministic(d))
	require.Equal(t, weight.Viterbi(0.5), accepts(d, symA))
}
