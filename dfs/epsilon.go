package dfs

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// EpsilonCycles reports whether the epsilon transitions of an FSA-shaped
// hypergraph form a cycle (an epsilon self-loop counts).
// Returns core.ErrNotFsm for inputs with non-FSA arcs.
func EpsilonCycles[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (bool, error) {
	if h == nil {
		return false, ErrGraphNil
	}
	if !h.IsFsm() {
		return false, fmt.Errorf("EpsilonCycles: %w", core.ErrNotFsm)
	}
	o := resolve(opts)

	// source → destination over epsilon arcs only
	adj := make([][]core.StateID, h.NumStates())
	h.ForArcs(func(id core.ArcID, a core.Arc[W]) bool {
		if h.IsEpsilonArc(id) {
			adj[a.Tails[0]] = append(adj[a.Tails[0]], a.Head)
		}

		return true
	})

	t := newTarjan(adj, o)
	if err := t.run(); err != nil {
		return false, err
	}
	for _, c := range t.components {
		if c.Cyclic {
			return true, nil
		}
	}

	return false, nil
}
