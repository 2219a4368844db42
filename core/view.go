// File: view.go
// Role: Non-mutating views and structural comparison.
// Determinism:
//   - Views preserve StateIDs and ArcIDs of the source.
// AI-HINT (file):
//   - Views do NOT mutate the input Hypergraph.
//   - Indexed returns the input itself when it already stores the requested indices.
//   - EqualFSA ignores StateIDs of lexical states; it compares transitions.

package core

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// Indexed returns a hypergraph storing at least the indices in props. When h
// already stores them, h itself is returned; otherwise a re-indexed copy.
// Algorithms use it to obtain an index without mutating their input.
//
// Complexity: O(1) or O(V + Σ|tails|) when a copy is needed.
func Indexed[W weight.Weight[W]](h *Hypergraph[W], props Properties) *Hypergraph[W] {
	if h.props.Has(props) {
		return h
	}

	return h.Reindex(WithProperties(h.props | props))
}

// fsaKey identifies a transition for EqualFSA.
type fsaKey struct {
	src, dst StateID
	label    symbol.Label
}

// EqualFSA reports whether a and b hold the same transitions (source, label,
// destination and weight within delta, counted with multiplicity) and the
// same start and final states. Both inputs must be FSA-shaped.
//
// Errors:
//   - ErrNotFsm if either input has a non-FSA arc.
//
// Complexity: O(E·k) where k is the largest number of parallel transitions.
func EqualFSA[W weight.Weight[W]](a, b *Hypergraph[W], delta float64) (bool, error) {
	if !a.IsFsm() {
		return false, fmt.Errorf("EqualFSA: left: %w", ErrNotFsm)
	}
	if !b.IsFsm() {
		return false, fmt.Errorf("EqualFSA: right: %w", ErrNotFsm)
	}
	if a.start != b.start || a.final != b.final || a.NumArcs() != b.NumArcs() {
		return false, nil
	}

	left := transitions(a)
	for k, ws := range transitions(b) {
		cand := left[k]
		if len(cand) != len(ws) {
			return false, nil
		}
		used := make([]bool, len(cand))
		for _, w := range ws {
			found := false
			for i := range cand {
				if !used[i] && cand[i].ApproxEqual(w, delta) {
					used[i], found = true, true
					break
				}
			}
			if !found {
				return false, nil
			}
		}
	}

	return true, nil
}

// transitions groups arc weights by (source, label, destination).
func transitions[W weight.Weight[W]](h *Hypergraph[W]) map[fsaKey][]W {
	out := make(map[fsaKey][]W, len(h.arcs))
	for i := range h.arcs {
		l := h.ArcLabel(ArcID(i))
		if l.IsNone() {
			l = symbol.Acceptor(symbol.Epsilon)
		}
		k := fsaKey{src: h.arcs[i].Tails[0], dst: h.arcs[i].Head, label: l}
		out[k] = append(out[k], h.arcs[i].Weight)
	}

	return out
}
