// Package dijkstra implements Knuth's best-first derivation search.
//
// Notes on implementation choices:
//
//   - We perform an upfront scan of all arcs (O(E)) to reject weights better than One and fail fast.
//   - We treat any arc with cost ≥ InfCostThreshold as an impassable "wall".
//   - We stop settling once the best weight in the heap is worse than MaxCost.
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// Dijkstra computes the best derivation weight and back-pointer of every
// state of h.
//
// Preconditions and validation (in order):
//  1. h must be non-nil (ErrNilGraph).
//  2. W must be Idempotent (ErrNotIdempotent).
//  3. No arc weight may be better than One (ErrNotMonotone).
//
// Complexity:
//
//   - Time:  O((V + Σ|tails|) log V)
//   - Space: O(V + Σ|tails|)
func Dijkstra[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*Result[W], error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate
	if h == nil {
		return nil, ErrNilGraph
	}
	if !weight.Props[W]().Has(weight.Idempotent) {
		return nil, ErrNotIdempotent
	}
	one := weight.One[W]()
	for id := core.ArcID(0); int(id) < h.NumArcs(); id++ {
		if w := h.Arc(id).Weight; w.Better(one) {
			return nil, fmt.Errorf("%w: arc %d weight=%s", ErrNotMonotone, id, w)
		}
	}

	// 3) Prepare runner state
	n := h.NumStates()
	r := &runner[W]{
		h:       h,
		options: cfg,
		res: &Result[W]{
			Weights: make([]W, n),
			Back:    make([]core.ArcID, n),
			Settled: make([]bool, n),
			h:       h,
		},
		occ:     make([][]core.ArcID, n),
		pending: make([]int, h.NumArcs()),
	}

	// 4) Seed and run
	r.init()
	r.process()
	r.discardOpen()
	cfg.Logger.Debug("dijkstra: done", "states", n, "settled", r.settled, "pushes", r.pushes)

	return r.res, nil
}

// runner holds the mutable state for a single search.
type runner[W weight.Weight[W]] struct {
	h       *core.Hypergraph[W]
	options Options
	res     *Result[W]
	occ     [][]core.ArcID // structural tail → arcs waiting on it (with multiplicity)
	pending []int          // arc → unsettled structural tail occurrences
	pq      nodePQ[W]
	seq     int
	settled int
	pushes  int
}

// init sets every weight to Zero, counts pending tails and pushes the axioms
// and the arcs that wait on nothing.
func (r *runner[W]) init() {
	h := r.h
	zero := weight.Zero[W]()
	for s := range r.res.Weights {
		r.res.Weights[s] = zero
		r.res.Back[s] = NoArc
	}

	// 1) Lexical states are settled with One.
	for s := core.StateID(0); int(s) < h.NumStates(); s++ {
		if h.IsLexical(s) {
			r.res.Weights[s] = weight.One[W]()
			r.res.Settled[s] = true
		}
	}

	// 2) Pending counts over structural tails.
	hasIn := make([]bool, h.NumStates())
	for id := core.ArcID(0); int(id) < h.NumArcs(); id++ {
		a := h.Arc(id)
		hasIn[a.Head] = true
		for _, t := range a.Tails {
			if !h.IsLexical(t) {
				r.occ[t] = append(r.occ[t], id)
				r.pending[id]++
			}
		}
	}

	// 3) Axioms, then arcs that can fire immediately.
	heap.Init(&r.pq)
	start := h.Start()
	for s := core.StateID(0); int(s) < h.NumStates(); s++ {
		axiom := s == start || (start == core.NoState && !h.IsLexical(s) && !hasIn[s])
		if axiom {
			r.res.Weights[s] = weight.One[W]()
			r.push(s)
		}
	}
	for id := core.ArcID(0); int(id) < h.NumArcs(); id++ {
		if r.pending[id] == 0 {
			r.fire(id)
		}
	}
}

// process repeatedly settles the best open state and relaxes the arcs
// waiting on it.
//
// Loop termination conditions:
//
//   - The heap becomes empty (every derivable state settled).
//   - The best weight in the heap costs more than MaxCost.
func (r *runner[W]) process() {
	for r.pq.Len() > 0 {
		// 1) Pop the best item.
		item := heap.Pop(&r.pq).(*nodeItem[W])
		u := item.id

		// 2) Skip stale entries.
		if r.res.Settled[u] {
			continue
		}

		// 3) Stop once everything left is over the cap.
		if item.w.Cost() > r.options.MaxCost {
			break
		}

		// 4) Settle u and release the arcs waiting on it.
		r.res.Settled[u] = true
		r.settled++
		for _, id := range r.occ[u] {
			r.pending[id]--
			if r.pending[id] == 0 {
				r.fire(id)
			}
		}
	}
}

// discardOpen resets states left in the heap to Zero without a back-pointer.
func (r *runner[W]) discardOpen() {
	zero := weight.Zero[W]()
	for s, done := range r.res.Settled {
		if !done {
			r.res.Weights[s] = zero
			r.res.Back[s] = NoArc
		}
	}
}

// fire relaxes the head of an arc whose structural tails are all settled.
func (r *runner[W]) fire(id core.ArcID) {
	a := r.h.Arc(id)
	if a.Weight.Cost() >= r.options.InfCostThreshold || r.res.Settled[a.Head] {
		return
	}
	cand := a.Weight
	for _, t := range a.Tails {
		cand = cand.Times(r.res.Weights[t])
	}
	if !cand.Better(r.res.Weights[a.Head]) {
		return
	}
	r.res.Weights[a.Head] = cand
	r.res.Back[a.Head] = id
	r.push(a.Head)
}

func (r *runner[W]) push(s core.StateID) {
	r.seq++
	r.pushes++
	heap.Push(&r.pq, &nodeItem[W]{id: s, w: r.res.Weights[s], seq: r.seq})
}

// nodeItem is a state with its weight at push time.
type nodeItem[W weight.Weight[W]] struct {
	id  core.StateID
	w   W
	seq int // push order, breaks ties first-come first-served
}

// nodePQ is a best-first heap of *nodeItem ordered by weight, then push order.
type nodePQ[W weight.Weight[W]] []*nodeItem[W]

// Len returns the number of items in the heap.
func (pq nodePQ[W]) Len() int { return len(pq) }

// Less defines the comparison: better weight → higher priority.
func (pq nodePQ[W]) Less(i, j int) bool {
	if pq[i].w.Better(pq[j].w) {
		return true
	}
	if pq[j].w.Better(pq[i].w) {
		return false
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ[W]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ[W]) Push(x any) { *pq = append(*pq, x.(*nodeItem[W])) }

// Pop removes and returns the best element.
func (pq *nodePQ[W]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
