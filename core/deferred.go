// File: deferred.go
// Role: DeferredArcs, the insertion buffer usable while arcs are being visited.
// Determinism:
//   - Committed arcs receive consecutive ArcIDs in the order they were added.
// AI-HINT (file):
//   - Add never touches the container; only Commit does.
//   - A failed Commit leaves the container exactly as it was and drops the buffer.

package core

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/weight"
)

// DeferredArcs collects arcs during a traversal and commits them afterwards.
// Buffered arcs are invisible to every visitor until Commit.
type DeferredArcs[W weight.Weight[W]] struct {
	h       *Hypergraph[W]
	pending []Arc[W]
}

// NewDeferredArcs returns an empty buffer bound to h.
func NewDeferredArcs[W weight.Weight[W]](h *Hypergraph[W]) *DeferredArcs[W] {
	return &DeferredArcs[W]{h: h}
}

// Add buffers the arc tails → head. The tails slice is copied; nothing is
// validated until Commit.
func (d *DeferredArcs[W]) Add(head StateID, tails []StateID, w W) {
	d.pending = append(d.pending, Arc[W]{Head: head, Tails: append([]StateID(nil), tails...), Weight: w})
}

// Len returns the number of buffered arcs.
func (d *DeferredArcs[W]) Len() int { return len(d.pending) }

// Discard drops every buffered arc.
func (d *DeferredArcs[W]) Discard() { d.pending = nil }

// Commit appends every buffered arc to the container, or none of them.
//
// Implementation:
//   - Stage 1: Validate every pending arc against the current state table.
//   - Stage 2: Build the new arena and indices on fresh backing arrays
//     (three-index appends force a copy), leaving the live slices untouched.
//   - Stage 3: Swap the new slices in and clear the buffer.
//
// Errors:
//   - ErrMutationDuringIteration when called from inside a visitor.
//   - Any AddArc validation error; the buffer is dropped and h is unchanged.
//
// Complexity: O(E + V + Σ|pending tails|).
func (d *DeferredArcs[W]) Commit() error {
	h := d.h
	if h.iterating.Load() > 0 {
		return ErrMutationDuringIteration
	}
	n := len(d.pending)
	for i := range d.pending {
		if err := h.validateArc(d.pending[i].Head, d.pending[i].Tails); err != nil {
			d.pending = nil

			return fmt.Errorf("commit arc %d of %d: %w", i, n, err)
		}
	}
	if n == 0 {
		return nil
	}

	arcs := append(h.arcs[:len(h.arcs):len(h.arcs)], d.pending...)
	var inArcs, outArcs [][]ArcID
	if h.inArcs != nil {
		inArcs = make([][]ArcID, len(h.inArcs))
		copy(inArcs, h.inArcs)
	}
	if h.outArcs != nil {
		outArcs = make([][]ArcID, len(h.outArcs))
		copy(outArcs, h.outArcs)
	}
	for i := range d.pending {
		id := ArcID(len(h.arcs) + i)
		a := d.pending[i]
		if inArcs != nil {
			l := inArcs[a.Head]
			inArcs[a.Head] = append(l[:len(l):len(l)], id)
		}
		if outArcs != nil && len(a.Tails) > 0 {
			l := outArcs[a.Tails[0]]
			outArcs[a.Tails[0]] = append(l[:len(l):len(l)], id)
		}
	}

	h.arcs, h.inArcs, h.outArcs = arcs, inArcs, outArcs
	d.pending = nil

	return nil
}
