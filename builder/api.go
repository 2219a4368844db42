// SPDX-License-Identifier: MIT
//
// api.go: the Build orchestrator and the Constructor contract.

package builder

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// Constructor applies a deterministic mutation to h using the resolved
// configuration. Constructors validate early and return sentinel errors.
type Constructor[W weight.Weight[W]] func(h *core.Hypergraph[W], cfg builderConfig) error

// Build creates a hypergraph with hopts, resolves bopts and applies cons in
// order. The first constructor error is returned wrapped as "Build: %w".
//
// Complexity: O(len(bopts)) plus the cost of every constructor.
func Build[W weight.Weight[W]](hopts []core.Option, bopts []Option, cons ...Constructor[W]) (*core.Hypergraph[W], error) {
	h := core.New[W](hopts...)
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(h, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return h, nil
}

// addStates appends n structural states and returns the first id.
func addStates[W weight.Weight[W]](h *core.Hypergraph[W], n int) core.StateID {
	first := core.StateID(h.NumStates())
	for i := 0; i < n; i++ {
		h.AddState()
	}

	return first
}

// addTransition adds src -token-> dst with the next configured weight.
func addTransition[W weight.Weight[W]](h *core.Hypergraph[W], cfg builderConfig, method string, src, dst core.StateID, token string) error {
	w, err := nextWeight[W](cfg)
	if err != nil {
		return fmt.Errorf("%s: weight: %w", method, err)
	}
	lex := h.LabelState(labelFor(cfg, token))
	if _, err = h.AddArc(dst, []core.StateID{src, lex}, w); err != nil {
		return fmt.Errorf("%s: AddArc(%d→%d): %w: %w", method, src, dst, ErrConstructFailed, err)
	}

	return nil
}
