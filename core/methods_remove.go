// File: methods_remove.go
// Role: Atomic arc and state deletion.
// Determinism:
//   - Surviving arcs and states keep their relative order; ids are renumbered densely.
// AI-HINT (file):
//   - Both functions build the replacement arena and indices first and swap
//     them in one assignment, so a deletion is applied completely or not at all.

package core

import "github.com/katalvlaran/hyperlath/symbol"

// RemoveArcs deletes every arc for which remove returns true and returns the
// number of arcs deleted. Surviving ArcIDs are renumbered.
//
// Errors:
//   - ErrMutationDuringIteration when called from inside a visitor.
//
// Complexity: O(V + Σ|tails|).
func (h *Hypergraph[W]) RemoveArcs(remove func(ArcID, Arc[W]) bool) (int, error) {
	if h.iterating.Load() > 0 {
		return 0, ErrMutationDuringIteration
	}
	keep := make([]bool, len(h.arcs))
	removed := 0
	for i := range h.arcs {
		keep[i] = !remove(ArcID(i), h.arcs[i])
		if !keep[i] {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	h.rebuild(nil, keep)

	return removed, nil
}

// RemoveStates deletes every state for which remove returns true, together
// with every arc touching it. It returns the old→new mapping (NoState for
// deleted states). Start and final markers follow the mapping.
//
// Errors:
//   - ErrMutationDuringIteration when called from inside a visitor.
//
// Complexity: O(V + Σ|tails|).
func (h *Hypergraph[W]) RemoveStates(remove func(StateID) bool) ([]StateID, error) {
	if h.iterating.Load() > 0 {
		return nil, ErrMutationDuringIteration
	}
	mapping := make([]StateID, len(h.labels))
	next := StateID(0)
	for s := range h.labels {
		if remove(StateID(s)) {
			mapping[s] = NoState
			continue
		}
		mapping[s] = next
		next++
	}

	keep := make([]bool, len(h.arcs))
	for i := range h.arcs {
		keep[i] = mapping[h.arcs[i].Head] != NoState
		for _, t := range h.arcs[i].Tails {
			if mapping[t] == NoState {
				keep[i] = false
				break
			}
		}
	}
	h.rebuild(mapping, keep)

	return mapping, nil
}

// rebuild replaces the container contents with the kept arcs, renumbering
// states through mapping (nil means identity).
func (h *Hypergraph[W]) rebuild(mapping []StateID, keep []bool) {
	remap := func(s StateID) StateID {
		if mapping == nil || s == NoState {
			return s
		}

		return mapping[s]
	}

	// 1) States and lexical lookup.
	labels := h.labels
	lexical := h.lexical
	if mapping != nil {
		labels = make([]symbol.Label, 0, len(h.labels))
		lexical = make(map[symbol.Label]StateID, len(h.lexical))
		for s, l := range h.labels {
			if mapping[s] == NoState {
				continue
			}
			labels = append(labels, l)
		}
		for l, s := range h.lexical {
			if ns := mapping[s]; ns != NoState {
				lexical[l] = ns
			}
		}
		// A deduplicated label whose canonical state was deleted falls back
		// to the first surviving state carrying the same label.
		for s, l := range labels {
			if l.IsNone() {
				continue
			}
			if _, ok := lexical[l]; !ok {
				lexical[l] = StateID(s)
			}
		}
	}

	// 2) Arcs and indices on fresh slices.
	arcs := make([]Arc[W], 0, len(h.arcs))
	var inArcs, outArcs [][]ArcID
	if h.inArcs != nil {
		inArcs = make([][]ArcID, len(labels))
	}
	if h.outArcs != nil {
		outArcs = make([][]ArcID, len(labels))
	}
	for i := range h.arcs {
		if !keep[i] {
			continue
		}
		a := h.arcs[i]
		tails := make([]StateID, len(a.Tails))
		for j, t := range a.Tails {
			tails[j] = remap(t)
		}
		id := ArcID(len(arcs))
		head := remap(a.Head)
		arcs = append(arcs, Arc[W]{Head: head, Tails: tails, Weight: a.Weight})
		if inArcs != nil {
			inArcs[head] = append(inArcs[head], id)
		}
		if outArcs != nil && len(tails) > 0 {
			outArcs[tails[0]] = append(outArcs[tails[0]], id)
		}
	}

	// 3) Swap.
	h.labels, h.lexical = labels, lexical
	h.arcs, h.inArcs, h.outArcs = arcs, inArcs, outArcs
	h.start, h.final = remap(h.start), remap(h.final)
}
