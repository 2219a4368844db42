package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

func TestDeferredArcs_InvisibleUntilCommit(t *testing.T) {
	c := newChain(t, core.WithInArcs(), core.WithOutArcs())
	h := c.h
	buf := core.NewDeferredArcs(h)

	visited := 0
	h.ForArcs(func(id core.ArcID, a core.Arc[weight.Viterbi]) bool {
		visited++
		// Mirror every arc as an epsilon shortcut.
		buf.Add(a.Head, a.Tails[:1], a.Weight)

		return true
	})
	assert.Equal(t, 2, visited, "buffered arcs must not be visited")
	assert.Equal(t, 2, h.NumArcs())
	assert.Equal(t, 2, buf.Len())

	before := h.NumArcs()
	require.NoError(t, buf.Commit())
	assert.Equal(t, before+2, h.NumArcs())
	assert.Zero(t, buf.Len())
	checkIndices(t, h)
	assert.True(t, h.IsEpsilonArc(2))
}

func TestDeferredArcs_FailedCommitIsAtomic(t *testing.T) {
	c := newChain(t, core.WithInArcs(), core.WithOutArcs())
	h := c.h
	snapshot := h.Clone()

	buf := core.NewDeferredArcs(h)
	buf.Add(c.s2, []core.StateID{c.s0}, 0.5)
	buf.Add(c.s2, []core.StateID{core.StateID(100)}, 0.5)
	err := buf.Commit()
	require.ErrorIs(t, err, core.ErrStateNotFound)
	assert.Zero(t, buf.Len(), "buffer is dropped after a failed commit")

	eq, err := core.EqualFSA(snapshot, h, 0)
	require.NoError(t, err)
	assert.True(t, eq)
	checkIndices(t, h)
}

func TestDeferredArcs_CommitInsideVisitor(t *testing.T) {
	c := newChain(t)
	buf := core.NewDeferredArcs(c.h)
	buf.Add(c.s2, []core.StateID{c.s0}, 1)
	var err error
	c.h.ForArcs(func(core.ArcID, core.Arc[weight.Viterbi]) bool {
		err = buf.Commit()

		return false
	})
	require.ErrorIs(t, err, core.ErrMutationDuringIteration)
	assert.Equal(t, 1, buf.Len())

	buf.Discard()
	require.NoError(t, buf.Commit())
	assert.Equal(t, 2, c.h.NumArcs())
}

func TestDeferredArcs_CommitDoesNotAliasClones(t *testing.T) {
	c := newChain(t, core.WithInArcs())
	view, err := c.h.InArcs(c.s2)
	require.NoError(t, err)

	buf := core.NewDeferredArcs(c.h)
	buf.Add(c.s2, []core.StateID{c.s0}, 1)
	require.NoError(t, buf.Commit())

	assert.Len(t, view, 1, "earlier index views keep their length")
	now, err := c.h.InArcs(c.s2)
	require.NoError(t, err)
	assert.Equal(t, []core.ArcID{1, 2}, now)
}
