package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// walker encapsulates mutable traversal state.
type walker struct {
	opts  Options
	ctx   context.Context
	queue []core.StateID
	res   *Result
}

func newWalker(n int, opts []Option) *walker {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &walker{opts: o, ctx: o.Ctx, queue: make([]core.StateID, 0, n), res: newResult(n)}
}

// enqueue marks s reached at depth d, calls OnVisit and adds it to the queue.
func (w *walker) enqueue(s core.StateID, d int) error {
	w.res.Reached[s] = true
	w.res.Depth[s] = d
	w.res.Order = append(w.res.Order, s)
	if err := w.opts.OnVisit(s, d); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", s, err)
	}
	w.queue = append(w.queue, s)

	return nil
}

// dequeue pops the first state, checking cancellation first.
func (w *walker) dequeue() (core.StateID, error) {
	select {
	case <-w.ctx.Done():
		return core.NoState, w.ctx.Err()
	default:
	}
	s := w.queue[0]
	w.queue = w.queue[1:]

	return s, nil
}

// Accessible computes bottom-up B-reachability.
//
// Steps:
//  1. Count, for every arc, the occurrences of structural tails not yet reached.
//  2. Seed lexical states, the axioms and the heads of zero-tail arcs.
//  3. Pop a state; every arc waiting on it loses one pending tail; an arc
//     with no pending tail makes its head reachable.
func Accessible[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*Result, error) {
	if h == nil {
		return nil, ErrGraphNil
	}
	n := h.NumStates()
	w := newWalker(n, opts)

	// 1) tail → arcs adjacency (one entry per occurrence) and pending counts.
	waiting := make([][]core.ArcID, n)
	pending := make([]int, h.NumArcs())
	hasIn := make([]bool, n)
	h.ForArcs(func(id core.ArcID, a core.Arc[W]) bool {
		hasIn[a.Head] = true
		for _, t := range a.Tails {
			if !h.IsLexical(t) {
				waiting[t] = append(waiting[t], id)
				pending[id]++
			}
		}

		return true
	})

	// 2) seeds
	start := h.Start()
	for s := core.StateID(0); int(s) < n; s++ {
		seed := h.IsLexical(s) ||
			(start != core.NoState && s == start) ||
			(start == core.NoState && !hasIn[s])
		if seed {
			if err := w.enqueue(s, 0); err != nil {
				return nil, err
			}
		}
	}
	for id := range pending {
		a := h.Arc(core.ArcID(id))
		if pending[id] == 0 && !w.res.Reached[a.Head] {
			if err := w.enqueue(a.Head, 1); err != nil {
				return nil, err
			}
		}
	}

	// 3) propagate
	for len(w.queue) > 0 {
		s, err := w.dequeue()
		if err != nil {
			return nil, err
		}
		for _, id := range waiting[s] {
			pending[id]--
			if pending[id] > 0 {
				continue
			}
			a := h.Arc(id)
			if w.res.Reached[a.Head] {
				continue
			}
			if err := w.enqueue(a.Head, height(w.res.Depth, a.Tails)+1); err != nil {
				return nil, err
			}
		}
	}

	return w.res, nil
}

// height is the largest depth among tails.
func height(depth []int, tails []core.StateID) int {
	d := 0
	for _, t := range tails {
		d = max(d, depth[t])
	}

	return d
}

// CoAccessible walks top-down from the final state. Without a final state
// nothing is co-accessible.
func CoAccessible[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*Result, error) {
	if h == nil {
		return nil, ErrGraphNil
	}

	return coAccessible(h, opts, nil)
}

// coAccessible walks in-arcs top-down from the final state, skipping arcs
// rejected by follow (nil follows every arc).
func coAccessible[W weight.Weight[W]](h *core.Hypergraph[W], opts []Option, follow func(core.Arc[W]) bool) (*Result, error) {
	n := h.NumStates()
	w := newWalker(n, opts)
	if h.Final() == core.NoState {
		return w.res, nil
	}

	in := make([][]core.ArcID, n)
	h.ForArcs(func(id core.ArcID, a core.Arc[W]) bool {
		if follow == nil || follow(a) {
			in[a.Head] = append(in[a.Head], id)
		}

		return true
	})

	if err := w.enqueue(h.Final(), 0); err != nil {
		return nil, err
	}
	for len(w.queue) > 0 {
		s, err := w.dequeue()
		if err != nil {
			return nil, err
		}
		for _, id := range in[s] {
			for _, t := range h.Arc(id).Tails {
				if w.res.Reached[t] {
					continue
				}
				if err := w.enqueue(t, w.res.Depth[s]+1); err != nil {
					return nil, err
				}
			}
		}
	}

	return w.res, nil
}

// Useful returns a mask of the states that take part in some derivation of
// the final state.
//
// Steps:
//  1. Accessible marks every derivable state.
//  2. If the final state is not derivable nothing is useful.
//  3. Walk top-down from the final state through arcs whose tails are all
//     derivable. Every state reached lies on an arc that survives trimming,
//     so one pass is enough.
func Useful[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) ([]bool, error) {
	acc, err := Accessible(h, opts...)
	if err != nil {
		return nil, err
	}
	useful := make([]bool, h.NumStates())
	if f := h.Final(); f == core.NoState || !acc.Reached[f] {
		return useful, nil
	}
	co, err := coAccessible(h, opts, func(a core.Arc[W]) bool {
		for _, t := range a.Tails {
			if !acc.Reached[t] {
				return false
			}
		}

		return true
	})
	if err != nil {
		return nil, err
	}
	copy(useful, co.Reached)

	return useful, nil
}

// Trim removes every state that is not useful (and every arc touching one)
// and returns the old→new state mapping from core.RemoveStates.
func Trim[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) ([]core.StateID, error) {
	useful, err := Useful(h, opts...)
	if err != nil {
		return nil, err
	}

	return h.RemoveStates(func(s core.StateID) bool { return !useful[s] })
}
