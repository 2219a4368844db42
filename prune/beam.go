package prune

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hyperlath/bfs"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/weight"
)

// Beam returns a pruned copy of h; see BeamInPlace. h is not modified.
func Beam[W weight.Weight[W]](h *core.Hypergraph[W], margin float64, opts ...Option) (*core.Hypergraph[W], error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil hypergraph", core.ErrInvalidInput)
	}
	c := h.Clone()
	if _, err := BeamInPlace(c, margin, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// BeamInPlace deletes from h every arc whose posterior cost exceeds the cost
// of the best derivation by more than margin, then trims h to its useful
// states. It mutates h and returns the old→new state mapping of the trim.
//
// Steps:
//  1. Inside and outside weights on h (indexed copy if h lacks in-arcs;
//     ArcIDs are identical).
//  2. The best derivation cost: the inside total for an Idempotent W,
//     otherwise the inside total of the max-score projection (bestCost).
//  3. RemoveArcs on posterior cost, applied atomically.
//  4. bfs.Trim.
//
// An arc of the best derivation has a posterior at least as good as the
// derivation itself, so margin 0 keeps it for every weight type.
//
// Validation and inside/outside errors leave h unchanged.
func BeamInPlace[W weight.Weight[W]](h *core.Hypergraph[W], margin float64, opts ...Option) ([]core.StateID, error) {
	// 1) Validate
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if margin < 0 || math.IsNaN(margin) {
		return nil, fmt.Errorf("%w: margin must be non-negative (%g)", ErrOptionViolation, margin)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: nil hypergraph", core.ErrInvalidInput)
	}
	if h.Final() == core.NoState {
		return nil, ErrNoDerivation
	}

	// 2) Posteriors
	hi := core.Indexed(h, core.StoreInArcs)
	in, err := shortest.Inside(hi, o.shortestOptions()...)
	if err != nil {
		return nil, err
	}
	total := in.Total()
	if weight.IsZero(total) {
		return nil, ErrNoDerivation
	}
	out, err := shortest.Outside(hi, in, o.shortestOptions()...)
	if err != nil {
		return nil, err
	}
	best, err := bestCost(hi, in, o)
	if err != nil {
		return nil, err
	}
	limit := best + margin + costSlack

	// 3) Remove and trim
	removed, err := h.RemoveArcs(func(id core.ArcID, _ core.Arc[W]) bool {
		return shortest.ArcPosterior(hi, id, in, out).Cost() > limit
	})
	if err != nil {
		return nil, err
	}
	mapping, err := bfs.Trim(h)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("prune: beam", "margin", margin, "total", total.String(), "bestCost", best,
		"removedArcs", removed, "states", h.NumStates(), "arcs", h.NumArcs())

	return mapping, nil
}

// bestCost returns the cost of the best single derivation of the final state.
// For an Idempotent W that is the inside total. Otherwise ⊕ mixes
// derivations, so the arcs are projected onto weight.Feature (max over
// scores, score = -Cost) with identical StateIDs and ArcIDs, and the inside
// total of the projection is used.
func bestCost[W weight.Weight[W]](h *core.Hypergraph[W], in *shortest.Result[W], o Options) (float64, error) {
	if weight.Props[W]().Has(weight.Idempotent) {
		return in.Total().Cost(), nil
	}

	p := core.New[weight.Feature](core.WithInArcs(), core.WithCapacity(h.NumStates(), h.NumArcs()))
	for s := core.StateID(0); int(s) < h.NumStates(); s++ {
		if h.IsLexical(s) {
			p.AddLabeledState(h.Label(s))
		} else {
			p.AddState()
		}
	}
	var err error
	h.ForArcs(func(_ core.ArcID, a core.Arc[W]) bool {
		_, err = p.AddArc(a.Head, a.Tails, weight.NewFeature(-a.Weight.Cost(), nil))

		return err == nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune: best-cost projection: %w", err)
	}
	if s := h.Start(); s != core.NoState {
		_ = p.SetStart(s)
	}
	_ = p.SetFinal(h.Final())

	pin, err := shortest.Inside(p, o.shortestOptions()...)
	if err != nil {
		return 0, err
	}

	return pin.Total().Cost(), nil
}
