package shortest

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/dfs"
	"github.com/katalvlaran/hyperlath/weight"
)

// Inside computes the inside weight of every state of h.
//
// Preconditions and validation (in order):
//  1. h must be non-nil (ErrNilGraph).
//  2. Options must be valid (ErrOptionViolation).
//  3. h must store the in-arc index (core.ErrIndexMissing).
//
// Steps:
//  1. Order states bottom-up with dfs.Components.
//  2. Evaluate acyclic components once from their in-arcs.
//  3. Iterate cyclic components to a fixed point.
//
// Complexity: O(V + Σ|tails|) plus the sweeps of cyclic components.
func Inside[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*Result[W], error) {
	// 1) Validate
	if h == nil {
		return nil, ErrNilGraph
	}
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if !h.HasInArcs() {
		return nil, fmt.Errorf("Inside: %w", core.ErrIndexMissing)
	}

	// 2) Components in dependency order
	comps, err := dfs.Components(h)
	if err != nil {
		return nil, fmt.Errorf("Inside: %w", err)
	}

	// 3) Base weights
	n := h.NumStates()
	res := &Result[W]{Weights: make([]W, n), final: h.Final()}
	zero := weight.Zero[W]()
	for i := range res.Weights {
		res.Weights[i] = zero
	}
	axiom := insideAxioms(h)
	vals := res.Weights
	eval := func(s core.StateID) W {
		if h.IsLexical(s) {
			return weight.One[W]()
		}
		acc := zero
		if axiom[s] {
			acc = weight.One[W]()
		}
		ids, _ := h.InArcs(s)
		for _, id := range ids {
			a := h.Arc(id)
			p := a.Weight
			for _, t := range a.Tails {
				p = p.Times(vals[t])
			}
			acc = acc.Plus(p)
		}

		return acc
	}

	// 4) Evaluate
	cyclic := 0
	for _, c := range comps {
		if !c.Cyclic {
			vals[c.States[0]] = eval(c.States[0])
			continue
		}
		cyclic++
		iters, err := fixpoint(c.States, vals, o, eval)
		if err != nil {
			return nil, fmt.Errorf("Inside: %w", err)
		}
		o.Logger.Debug("inside: cyclic component converged", "size", len(c.States), "iterations", iters)
	}
	o.Logger.Debug("inside: done", "states", n, "components", len(comps), "cyclic", cyclic)

	return res, nil
}

// insideAxioms marks the structural states whose base weight is One: the
// start state when set, otherwise every structural state without in-arcs.
func insideAxioms[W weight.Weight[W]](h *core.Hypergraph[W]) []bool {
	axiom := make([]bool, h.NumStates())
	if s := h.Start(); s != core.NoState {
		axiom[s] = true

		return axiom
	}
	for s := core.StateID(0); int(s) < h.NumStates(); s++ {
		ids, _ := h.InArcs(s)
		axiom[s] = !h.IsLexical(s) && len(ids) == 0
	}

	return axiom
}

// fixpoint runs Jacobi sweeps over members: every sweep evaluates all members
// against the previous sweep's vals, then stores the new values. It stops
// when no member moved by more than Delta.
func fixpoint[W weight.Weight[W]](members []core.StateID, vals []W, o Options, eval func(core.StateID) W) (int, error) {
	next := make([]W, len(members))
	last := core.NoState
	for it := 1; it <= o.MaxIterations; it++ {
		for i, s := range members {
			next[i] = eval(s)
		}
		moving := core.NoState
		for i, s := range members {
			if moving == core.NoState && !next[i].ApproxEqual(vals[s], o.Delta) {
				moving = s
			}
			vals[s] = next[i]
		}
		if moving == core.NoState {
			return it, nil
		}
		last = moving
	}

	return o.MaxIterations, &ConvergenceError{Iterations: o.MaxIterations, State: last}
}
