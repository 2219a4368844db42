// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters and the Stats snapshot.
// Policy:
//   - No algorithms or hidden state here.
//   - Every exported function documents complexity.

package core

// Properties returns the adjacency indices stored by h.
// Complexity: O(1).
func (h *Hypergraph[W]) Properties() Properties { return h.props }

// HasInArcs reports whether the in-arc (by head) index is stored.
func (h *Hypergraph[W]) HasInArcs() bool { return h.props.Has(StoreInArcs) }

// HasOutArcs reports whether the out-arc (by first tail) index is stored.
func (h *Hypergraph[W]) HasOutArcs() bool { return h.props.Has(StoreOutArcs) }

// Stats is a point-in-time summary of a Hypergraph.
type Stats struct {
	States        int  // total states
	LexicalStates int  // states carrying a label
	Arcs          int  // total arcs
	Axioms        int  // arcs with zero tails
	MaxArity      int  // largest tail count over all arcs
	FSA           bool // every arc is FSA-shaped
	HasStart      bool
	HasFinal      bool
}

// Stats returns a snapshot of h.
//
// Implementation:
//   - Stage 1: Count lexical states in one pass over labels.
//   - Stage 2: Walk the arc arena once for axioms, arity and FSA shape.
//
// Complexity:
//   - Time O(V + Σ|tails|), Space O(1).
func (h *Hypergraph[W]) Stats() Stats {
	st := Stats{
		States:   len(h.labels),
		Arcs:     len(h.arcs),
		FSA:      true,
		HasStart: h.start != NoState,
		HasFinal: h.final != NoState,
	}
	for _, l := range h.labels {
		if !l.IsNone() {
			st.LexicalStates++
		}
	}
	for i := range h.arcs {
		n := len(h.arcs[i].Tails)
		if n == 0 {
			st.Axioms++
		}
		if n > st.MaxArity {
			st.MaxArity = n
		}
		if st.FSA && !h.fsaShaped(h.arcs[i].Tails) {
			st.FSA = false
		}
	}

	return st
}
