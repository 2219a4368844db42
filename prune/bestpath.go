package prune

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/bfs"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/dijkstra"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/weight"
)

// BestPath returns the best derivation of the final state of h.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. h must be non-nil (core.ErrInvalidInput).
//  3. W must be Idempotent (core.ErrUnsupportedInput).
//  4. The final state must be derivable (ErrNoDerivation).
//
// The input is never mutated; an in-arc index is built on a copy if missing.
func BestPath[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*Derivation[W], error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("%w: nil hypergraph", core.ErrInvalidInput)
	}
	if !weight.Props[W]().Has(weight.Idempotent) {
		return nil, fmt.Errorf("%w: best path requires an idempotent weight", core.ErrUnsupportedInput)
	}
	final := h.Final()
	if final == core.NoState {
		return nil, ErrNoDerivation
	}

	if o.Search == SearchKnuth {
		res, err := dijkstra.Dijkstra(h, dijkstra.WithLogger(o.Logger))
		if err != nil {
			return nil, err
		}
		if weight.IsZero(res.Total()) {
			return nil, ErrNoDerivation
		}

		return &Derivation[W]{Arcs: res.Derivation(final), Weight: res.Total()}, nil
	}

	hi := core.Indexed(h, core.StoreInArcs)
	in, err := shortest.Inside(hi, o.shortestOptions()...)
	if err != nil {
		return nil, err
	}
	if weight.IsZero(in.Total()) {
		return nil, ErrNoDerivation
	}
	x := &extractor[W]{h: hi, in: in, axiom: axioms(hi), onStack: make([]bool, hi.NumStates())}
	if err = x.pick(final); err != nil {
		return nil, err
	}
	o.Logger.Debug("prune: best path", "arcs", len(x.arcs), "weight", in.Total().String())

	return &Derivation[W]{Arcs: x.arcs, Weight: in.Total()}, nil
}

// extractor follows inside weights top-down.
type extractor[W weight.Weight[W]] struct {
	h       *core.Hypergraph[W]
	in      *shortest.Result[W]
	axiom   []bool
	onStack []bool
	arcs    []core.ArcID
}

// pick appends the best arc of s and expands its tails.
//
// Steps:
//  1. Lexical states and axioms whose inside is One need no arc.
//  2. The first in-arc whose product equals inside(s) wins; otherwise the
//     Better product. Arcs through a state already being expanded are skipped.
//  3. Recurse into the tails in order.
func (x *extractor[W]) pick(s core.StateID) error {
	if x.h.IsLexical(s) {
		return nil
	}
	v := x.in.Weights[s]
	one := weight.One[W]()
	if x.axiom[s] && v.Equal(one) {
		return nil
	}
	x.onStack[s] = true
	defer func() { x.onStack[s] = false }()

	ids, _ := x.h.InArcs(s)
	chosen := core.ArcID(-1)
	best := weight.Zero[W]()
	for _, id := range ids {
		p, ok := x.product(x.h.Arc(id))
		if !ok {
			continue
		}
		if p.Equal(v) {
			chosen, best = id, p
			break
		}
		if chosen < 0 || p.Better(best) {
			chosen, best = id, p
		}
	}
	if chosen < 0 || weight.IsZero(best) {
		if x.axiom[s] {
			return nil
		}

		return fmt.Errorf("%w: no usable in-arc at state %d", ErrNoDerivation, s)
	}

	x.arcs = append(x.arcs, chosen)
	for _, t := range x.h.Arc(chosen).Tails {
		if err := x.pick(t); err != nil {
			return err
		}
	}

	return nil
}

// product is w ⊗ ⨂ inside(tails), or false if a tail is on the stack.
func (x *extractor[W]) product(a core.Arc[W]) (W, bool) {
	p := a.Weight
	for _, t := range a.Tails {
		if x.onStack[t] {
			return p, false
		}
		p = p.Times(x.in.Weights[t])
	}

	return p, true
}

// axioms marks the start state when set, otherwise every structural state
// without in-arcs, matching shortest.Inside.
func axioms[W weight.Weight[W]](h *core.Hypergraph[W]) []bool {
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

// BestPathHypergraph returns a copy of h holding only the arcs of its best
// derivation (each once), trimmed to the useful states.
func BestPathHypergraph[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*core.Hypergraph[W], error) {
	d, err := BestPath(h, opts...)
	if err != nil {
		return nil, err
	}
	out := h.CloneEmpty()
	seen := make(map[core.ArcID]bool, len(d.Arcs))
	for _, id := range d.Arcs {
		if seen[id] {
			continue
		}
		seen[id] = true
		a := h.Arc(id)
		if _, err = out.AddArc(a.Head, a.Tails, a.Weight); err != nil {
			return nil, err
		}
	}
	if _, err = bfs.Trim(out); err != nil {
		return nil, err
	}

	return out, nil
}

// NBest returns the n best derivations. Only n = 1 is supported: larger
// values are clamped with a warning, smaller ones are rejected.
func NBest[W weight.Weight[W]](h *core.Hypergraph[W], n int, opts ...Option) ([]*Derivation[W], error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: n-best must be positive (%d)", ErrOptionViolation, n)
	}
	if n > 1 {
		o.Logger.Warn("prune: only 1-best extraction is supported, clamping", "requested", n)
	}
	d, err := BestPath(h, opts...)
	if err != nil {
		return nil, err
	}

	return []*Derivation[W]{d}, nil
}
