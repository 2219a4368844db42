// SPDX-License-Identifier: MIT
// Package core_test contains test fixtures for hyperlath/core.

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// Symbols used across core tests.
const (
	SymA = symbol.FirstUser + iota
	SymB
	SymC
)

// chain is the FSA 0 --a/0.5--> 1 --b/0.25--> 2 with start 0 and final 2.
type chain struct {
	h          *core.Hypergraph[weight.Viterbi]
	s0, s1, s2 core.StateID
	a, b       core.StateID // lexical states
}

func newChain(t *testing.T, opts ...core.Option) chain {
	t.Helper()
	h := core.New[weight.Viterbi](opts...)
	c := chain{h: h}
	c.s0, c.s1, c.s2 = h.AddState(), h.AddState(), h.AddState()
	c.a = h.LabelState(symbol.Acceptor(SymA))
	c.b = h.LabelState(symbol.Acceptor(SymB))
	_, err := h.AddArc(c.s1, []core.StateID{c.s0, c.a}, 0.5)
	require.NoError(t, err)
	_, err = h.AddArc(c.s2, []core.StateID{c.s1, c.b}, 0.25)
	require.NoError(t, err)
	require.NoError(t, h.SetStart(c.s0))
	require.NoError(t, h.SetFinal(c.s2))

	return c
}

// checkIndices asserts that both stored indices agree with the arc arena.
func checkIndices[W weight.Weight[W]](t *testing.T, h *core.Hypergraph[W]) {
	t.Helper()
	wantIn := make(map[core.StateID][]core.ArcID)
	wantOut := make(map[core.StateID][]core.ArcID)
	h.ForArcs(func(id core.ArcID, a core.Arc[W]) bool {
		wantIn[a.Head] = append(wantIn[a.Head], id)
		if len(a.Tails) > 0 {
			wantOut[a.Tails[0]] = append(wantOut[a.Tails[0]], id)
		}

		return true
	})
	for s := core.StateID(0); int(s) < h.NumStates(); s++ {
		if h.HasInArcs() {
			got, err := h.InArcs(s)
			require.NoError(t, err)
			require.Equal(t, len(wantIn[s]), len(got), "in-arcs of %d", s)
			for i := range got {
				require.Equal(t, wantIn[s][i], got[i])
			}
		}
		if h.HasOutArcs() {
			got, err := h.OutArcs(s)
			require.NoError(t, err)
			require.Equal(t, len(wantOut[s]), len(got), "out-arcs of %d", s)
			for i := range got {
				require.Equal(t, wantOut[s][i], got[i])
			}
		}
	}
}
