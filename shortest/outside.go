package shortest

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/dfs"
	"github.com/katalvlaran/hyperlath/weight"
)

// occurrence is one position of a state among an arc's tails.
type occurrence struct {
	arc core.ArcID
	pos int
}

// Outside computes outside weights given the inside weights of the same h.
// outside(final) = One; for every other state t
//
//	outside(t) = ⨁_{arcs a, tails(a)[i] = t} outside(head(a)) ⊗ w(a) ⊗ ⨂_{j≠i} inside(tails(a)[j])
//
// Components are processed top-down (reverse of dfs.Components); cyclic ones
// use the same fixed-point iteration as Inside.
//
// Errors: ErrNilGraph, ErrOptionViolation, ErrResultMismatch, *ConvergenceError.
func Outside[W weight.Weight[W]](h *core.Hypergraph[W], inside *Result[W], opts ...Option) (*Result[W], error) {
	if h == nil {
		return nil, ErrNilGraph
	}
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	n := h.NumStates()
	if inside == nil || len(inside.Weights) != n {
		return nil, ErrResultMismatch
	}

	comps, err := dfs.Components(h)
	if err != nil {
		return nil, fmt.Errorf("Outside: %w", err)
	}

	// tail → occurrences, in arc order
	occ := make([][]occurrence, n)
	h.ForArcs(func(id core.ArcID, a core.Arc[W]) bool {
		for i, t := range a.Tails {
			occ[t] = append(occ[t], occurrence{arc: id, pos: i})
		}

		return true
	})

	res := &Result[W]{Weights: make([]W, n), final: h.Final()}
	zero := weight.Zero[W]()
	for i := range res.Weights {
		res.Weights[i] = zero
	}
	vals := res.Weights
	final := h.Final()
	eval := func(t core.StateID) W {
		acc := zero
		if t == final {
			acc = weight.One[W]()
		}
		for _, oc := range occ[t] {
			a := h.Arc(oc.arc)
			p := vals[a.Head].Times(a.Weight)
			for j, u := range a.Tails {
				if j != oc.pos {
					p = p.Times(inside.Weights[u])
				}
			}
			acc = acc.Plus(p)
		}

		return acc
	}

	for i := len(comps) - 1; i >= 0; i-- {
		c := comps[i]
		if !c.Cyclic {
			vals[c.States[0]] = eval(c.States[0])
			continue
		}
		iters, err := fixpoint(c.States, vals, o, eval)
		if err != nil {
			return nil, fmt.Errorf("Outside: %w", err)
		}
		o.Logger.Debug("outside: cyclic component converged", "size", len(c.States), "iterations", iters)
	}
	o.Logger.Debug("outside: done", "states", n, "components", len(comps))

	return res, nil
}

// ArcPosterior returns outside(head) ⊗ w ⊗ ⨂ inside(tails): the total weight
// of all derivations of the final state that use arc id.
func ArcPosterior[W weight.Weight[W]](h *core.Hypergraph[W], id core.ArcID, inside, outside *Result[W]) W {
	a := h.Arc(id)
	p := outside.At(a.Head).Times(a.Weight)
	for _, t := range a.Tails {
		p = p.Times(inside.At(t))
	}

	return p
}
