// File: methods_states.go
// Role: State lifecycle & queries: AddState/AddLabeledState/LabelState,
//       labels, start and final markers.
// Determinism:
//   - StateIDs are dense and assigned in creation order starting at 0.

package core

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/symbol"
)

// AddState creates a structural (unlabeled) state.
// Complexity: O(1) amortized.
func (h *Hypergraph[W]) AddState() StateID {
	return h.addState(symbol.NoLabel)
}

// AddLabeledState creates a new state carrying label. A NoLabel argument is
// equivalent to AddState. Unlike LabelState it never deduplicates.
func (h *Hypergraph[W]) AddLabeledState(label symbol.Label) StateID {
	s := h.addState(label)
	if !label.IsNone() {
		if _, ok := h.lexical[label]; !ok {
			h.lexical[label] = s
		}
	}

	return s
}

// LabelState returns the lexical state for label, creating it on first use.
// Passing NoLabel returns a fresh structural state.
func (h *Hypergraph[W]) LabelState(label symbol.Label) StateID {
	if label.IsNone() {
		return h.AddState()
	}
	if s, ok := h.lexical[label]; ok {
		return s
	}

	return h.AddLabeledState(label)
}

func (h *Hypergraph[W]) addState(label symbol.Label) StateID {
	s := StateID(len(h.labels))
	h.labels = append(h.labels, label)
	if h.props.Has(StoreInArcs) {
		h.inArcs = append(h.inArcs, nil)
	}
	if h.props.Has(StoreOutArcs) {
		h.outArcs = append(h.outArcs, nil)
	}

	return s
}

// NumStates returns the number of states.
func (h *Hypergraph[W]) NumStates() int { return len(h.labels) }

// HasState reports whether s is a valid state id.
func (h *Hypergraph[W]) HasState(s StateID) bool {
	return s >= 0 && int(s) < len(h.labels)
}

// Label returns the label of s (NoLabel for structural or unknown states).
func (h *Hypergraph[W]) Label(s StateID) symbol.Label {
	if !h.HasState(s) {
		return symbol.NoLabel
	}

	return h.labels[s]
}

// IsLexical reports whether s carries a label.
func (h *Hypergraph[W]) IsLexical(s StateID) bool {
	return h.HasState(s) && !h.labels[s].IsNone()
}

// SetStart marks s as the start state. NoState clears the marker.
func (h *Hypergraph[W]) SetStart(s StateID) error {
	if s != NoState && !h.HasState(s) {
		return fmt.Errorf("SetStart(%d): %w", s, ErrStateNotFound)
	}
	if s != NoState && h.IsLexical(s) {
		return fmt.Errorf("SetStart(%d): %w: start must be structural", s, ErrInvalidInput)
	}
	h.start = s

	return nil
}

// Start returns the start state or NoState.
func (h *Hypergraph[W]) Start() StateID { return h.start }

// SetFinal marks s as the final state. NoState clears the marker.
func (h *Hypergraph[W]) SetFinal(s StateID) error {
	if s != NoState && !h.HasState(s) {
		return fmt.Errorf("SetFinal(%d): %w", s, ErrStateNotFound)
	}
	if s != NoState && h.IsLexical(s) {
		return fmt.Errorf("SetFinal(%d): %w: final must be structural", s, ErrInvalidInput)
	}
	h.final = s

	return nil
}

// Final returns the final state or NoState.
func (h *Hypergraph[W]) Final() StateID { return h.final }

// IsEmpty reports whether the hypergraph has no final state or no arcs.
// An empty hypergraph accepts nothing.
func (h *Hypergraph[W]) IsEmpty() bool {
	return h.final == NoState || len(h.arcs) == 0
}
