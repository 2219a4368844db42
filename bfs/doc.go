// Package bfs provides breadth-first accessibility over a core.Hypergraph:
// which states can be derived (bottom-up), which states can contribute to a
// derivation of the final state (top-down), and trimming of everything else.
//
// What
//
//   - Accessible: B-reachability. Axioms are the start state when one is set,
//     otherwise every structural state without in-arcs; zero-tail arcs always
//     fire and lexical states are always accessible. A head becomes accessible
//     once every structural tail of one of its arcs is.
//   - CoAccessible: top-down from the final state through arcs whose head is
//     co-accessible; every tail of such an arc is co-accessible.
//   - Useful: accessible and co-accessible structural states, plus the lexical
//     states still referenced by an arc between useful states.
//   - Trim: removes every state that is not useful through
//     core.RemoveStates, so both indices are repaired atomically.
//   - Result carries the visit Order, a Reached mask and a per-state Depth:
//     derivation height for Accessible, distance from the final state for
//     CoAccessible.
//   - Hooks: OnVisit (may abort with an error), cancellation via WithContext.
//
// Determinism
//
//	Seeds are enqueued in ascending StateID order and arcs are scanned in
//	insertion order, so the visit sequence is fully reproducible.
//
// Complexity (V = states, T = Σ|tails|)
//
//   - Time:   O(V + T) for every function.
//   - Memory: O(V + T) for the tail → arcs adjacency built per call.
//
// Errors
//
//   - ErrGraphNil        if the hypergraph pointer is nil.
//   - context errors     if the context is canceled.
//   - hook errors        propagated from OnVisit.
package bfs
