package dfs

import (
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// TopologicalSort returns every state of h ordered so that all tails of an
// arc come before its head. Lexical states and axioms come first.
// Returns ErrCycleDetected if the dependency graph has a cycle.
// Complexity: O(V + Σ|tails|).
func TopologicalSort[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) ([]core.StateID, error) {
	comps, err := Components(h, opts...)
	if err != nil {
		return nil, err
	}
	order := make([]core.StateID, 0, h.NumStates())
	for _, c := range comps {
		if c.Cyclic {
			return nil, ErrCycleDetected
		}
		order = append(order, c.States...)
	}

	return order, nil
}
