// File: methods_arcs.go
// Role: Arc insertion, lookup, iteration and FSA shape queries.
// Determinism:
//   - ArcIDs are dense and assigned in insertion order.
//   - Every visitor walks arcs in ascending ArcID order.
// AI-HINT (file):
//   - Visitors return false to stop early.
//   - AddArc inside a visitor fails; use DeferredArcs instead.

package core

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/symbol"
)

// AddArc appends the arc tails → head with weight w and returns its ArcID.
// The tails slice is copied. An empty tail list is an axiom.
//
// Errors:
//   - ErrMutationDuringIteration if a visitor is active.
//   - ErrStateNotFound if head or any tail does not exist.
//   - ErrLexicalHead if head carries a label.
//
// Complexity: O(|tails|) amortized.
func (h *Hypergraph[W]) AddArc(head StateID, tails []StateID, w W) (ArcID, error) {
	if h.iterating.Load() > 0 {
		return 0, ErrMutationDuringIteration
	}
	if err := h.validateArc(head, tails); err != nil {
		return 0, err
	}

	return h.appendArc(head, append([]StateID(nil), tails...), w), nil
}

// validateArc checks ids and head kind without touching h.
func (h *Hypergraph[W]) validateArc(head StateID, tails []StateID) error {
	if !h.HasState(head) {
		return fmt.Errorf("AddArc: head %d: %w", head, ErrStateNotFound)
	}
	if h.IsLexical(head) {
		return fmt.Errorf("AddArc: head %d: %w", head, ErrLexicalHead)
	}
	for i, t := range tails {
		if !h.HasState(t) {
			return fmt.Errorf("AddArc: tail[%d]=%d: %w", i, t, ErrStateNotFound)
		}
	}

	return nil
}

// appendArc stores an already validated arc, taking ownership of tails.
func (h *Hypergraph[W]) appendArc(head StateID, tails []StateID, w W) ArcID {
	id := ArcID(len(h.arcs))
	h.arcs = append(h.arcs, Arc[W]{Head: head, Tails: tails, Weight: w})
	if h.inArcs != nil {
		h.inArcs[head] = append(h.inArcs[head], id)
	}
	if h.outArcs != nil && len(tails) > 0 {
		h.outArcs[tails[0]] = append(h.outArcs[tails[0]], id)
	}

	return id
}

// NumArcs returns the number of arcs.
func (h *Hypergraph[W]) NumArcs() int { return len(h.arcs) }

// Arc returns the arc with the given id. The returned Tails must not be modified.
// It panics if id is out of range, like a slice index.
func (h *Hypergraph[W]) Arc(id ArcID) Arc[W] { return h.arcs[id] }

// ForArcs visits every arc in insertion order until fn returns false.
func (h *Hypergraph[W]) ForArcs(fn func(ArcID, Arc[W]) bool) {
	h.iterating.Add(1)
	defer h.iterating.Add(-1)
	for i := range h.arcs {
		if !fn(ArcID(i), h.arcs[i]) {
			return
		}
	}
}

// ForInArcs visits the arcs whose head is s.
// Returns ErrIndexMissing without the in-arc index.
func (h *Hypergraph[W]) ForInArcs(s StateID, fn func(ArcID, Arc[W]) bool) error {
	ids, err := h.InArcs(s)
	if err != nil {
		return err
	}
	h.visit(ids, fn)

	return nil
}

// ForArcsOutFirstTail visits the arcs whose first tail is s.
// Returns ErrIndexMissing without the out-arc index.
func (h *Hypergraph[W]) ForArcsOutFirstTail(s StateID, fn func(ArcID, Arc[W]) bool) error {
	ids, err := h.OutArcs(s)
	if err != nil {
		return err
	}
	h.visit(ids, fn)

	return nil
}

func (h *Hypergraph[W]) visit(ids []ArcID, fn func(ArcID, Arc[W]) bool) {
	h.iterating.Add(1)
	defer h.iterating.Add(-1)
	for _, id := range ids {
		if !fn(id, h.arcs[id]) {
			return
		}
	}
}

// InArcs returns the ids of arcs whose head is s (read-only view).
func (h *Hypergraph[W]) InArcs(s StateID) ([]ArcID, error) {
	if h.inArcs == nil {
		return nil, fmt.Errorf("InArcs: %w", ErrIndexMissing)
	}
	if !h.HasState(s) {
		return nil, fmt.Errorf("InArcs(%d): %w", s, ErrStateNotFound)
	}

	return h.inArcs[s], nil
}

// OutArcs returns the ids of arcs whose first tail is s (read-only view).
func (h *Hypergraph[W]) OutArcs(s StateID) ([]ArcID, error) {
	if h.outArcs == nil {
		return nil, fmt.Errorf("OutArcs: %w", ErrIndexMissing)
	}
	if !h.HasState(s) {
		return nil, fmt.Errorf("OutArcs(%d): %w", s, ErrStateNotFound)
	}

	return h.outArcs[s], nil
}

// fsaShaped reports one structural tail optionally followed by one lexical tail.
func (h *Hypergraph[W]) fsaShaped(tails []StateID) bool {
	switch len(tails) {
	case 1:
		return !h.IsLexical(tails[0])
	case 2:
		return !h.IsLexical(tails[0]) && h.IsLexical(tails[1])
	default:
		return false
	}
}

// IsFsm reports whether every arc is an FSA transition.
// Complexity: O(E).
func (h *Hypergraph[W]) IsFsm() bool {
	for i := range h.arcs {
		if !h.fsaShaped(h.arcs[i].Tails) {
			return false
		}
	}

	return true
}

// ArcLabel returns the label of an FSA arc's lexical tail, or NoLabel for
// epsilon arcs of the form [p] and for arcs that are not FSA transitions.
func (h *Hypergraph[W]) ArcLabel(id ArcID) symbol.Label {
	a := h.arcs[id]
	if len(a.Tails) != 2 || !h.fsaShaped(a.Tails) {
		return symbol.NoLabel
	}

	return h.labels[a.Tails[1]]
}

// IsEpsilonArc reports whether an FSA arc consumes nothing: no lexical tail,
// or a lexical tail whose label is epsilon on both sides.
func (h *Hypergraph[W]) IsEpsilonArc(id ArcID) bool {
	a := h.arcs[id]
	if !h.fsaShaped(a.Tails) {
		return false
	}

	return len(a.Tails) == 1 || h.labels[a.Tails[1]].IsEpsilon()
}

// StructuralTails returns the unlabeled tails of arc id in order.
func (h *Hypergraph[W]) StructuralTails(id ArcID) []StateID {
	tails := h.arcs[id].Tails
	out := make([]StateID, 0, len(tails))
	for _, t := range tails {
		if !h.IsLexical(t) {
			out = append(out, t)
		}
	}

	return out
}
