// File: methods_clone.go
// Role: Cloning and re-indexing hypergraph instances.
// Determinism:
//   - Clones preserve StateIDs, ArcIDs and arc insertion order exactly.
// AI-HINT (file):
//   - CloneEmpty keeps states, labels and start/final but drops every arc.
//   - Reindex is the way to obtain an index that was not requested at New.

package core

import "github.com/katalvlaran/hyperlath/symbol"

// CloneEmpty returns a new Hypergraph with identical properties, states,
// labels and start/final markers, but no arcs.
//
// Complexity: O(V).
func (h *Hypergraph[W]) CloneEmpty() *Hypergraph[W] {
	return h.cloneStates(h.props)
}

// Clone returns a deep copy of h: properties, states, arcs (tails copied)
// and both indices when present.
//
// Complexity: O(V + Σ|tails|).
func (h *Hypergraph[W]) Clone() *Hypergraph[W] {
	return h.Reindex(WithProperties(h.props))
}

// Reindex returns a deep copy of h whose stored indices are exactly those
// requested by opts. Capacity options are honored as lower bounds.
//
// Implementation:
//   - Stage 1: Resolve the requested Properties.
//   - Stage 2: Copy states, labels and markers.
//   - Stage 3: Re-append every arc in ArcID order, rebuilding requested indices.
//
// Complexity: O(V + Σ|tails|).
func (h *Hypergraph[W]) Reindex(opts ...Option) *Hypergraph[W] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	out := h.cloneStates(s.props)
	out.arcs = make([]Arc[W], 0, max(len(h.arcs), s.arcCap))
	for i := range h.arcs {
		out.appendArc(h.arcs[i].Head, append([]StateID(nil), h.arcs[i].Tails...), h.arcs[i].Weight)
	}

	return out
}

// cloneStates copies the state table of h into a fresh container storing props.
func (h *Hypergraph[W]) cloneStates(props Properties) *Hypergraph[W] {
	n := len(h.labels)
	out := &Hypergraph[W]{
		props:   props,
		labels:  append(make([]symbol.Label, 0, n), h.labels...),
		lexical: make(map[symbol.Label]StateID, len(h.lexical)),
		start:   h.start,
		final:   h.final,
	}
	for l, s := range h.lexical {
		out.lexical[l] = s
	}
	if props.Has(StoreInArcs) {
		out.inArcs = make([][]ArcID, n)
	}
	if props.Has(StoreOutArcs) {
		out.outArcs = make([][]ArcID, n)
	}

	return out
}
