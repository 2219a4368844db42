// Package dijkstra implements Knuth's generalization of Dijkstra's algorithm
// to weighted hypergraphs: the best derivation of every state, found in
// best-first order with a priority queue.
//
// Overview:
//
//   - A state is settled when it is popped from the queue; its weight is final.
//   - An arc fires once all of its structural tails are settled; the candidate
//     weight w ⊗ ⨂ tails relaxes the head, exactly like an edge relaxation.
//   - Lexical states weigh One and never enter the queue. Axioms (the start
//     state, or every in-arc-less structural state when no start is set) are
//     seeded with One.
//
// When to use:
//
//   - Best-path extraction on hypergraphs with cycles, where the inside
//     fixed point would need many sweeps.
//   - Beam-style exploration: WithMaxCost stops once the best open state is
//     worse than the cap.
//
// Requirements:
//
//   - The weight must be Idempotent (⊕ selects one operand).
//   - Weights must be superior: no arc weight may be better than One
//     (the hypergraph analogue of "no negative edge"). A pre-scan fails fast
//     with ErrNotMonotone.
//
// Performance and complexity:
//
//   - Time:  O((V + Σ|tails|) log V) with the lazy decrease-key heap.
//   - Space: O(V + Σ|tails|).
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:        nil hypergraph.
//   - ErrNotIdempotent:   the weight type does not select (wraps core.ErrUnsupportedInput).
//   - ErrNotMonotone:     an arc weight is better than One (wraps core.ErrUnsupportedInput).
//   - ErrBadMaxCost:      WithMaxCost with NaN (panics, like the other option checks).
//   - ErrBadInfThreshold: WithInfCostThreshold with a value ≤ 0 (panics).
//
// Thread safety:
//
//   - Dijkstra only reads h; a shared hypergraph may be searched concurrently.
package dijkstra
