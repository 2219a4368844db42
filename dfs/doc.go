// Package dfs orders the dependency graph of a core.Hypergraph, in which
// every arc's head depends on its tails.
//
// What:
//
//   - Components: Tarjan's strongly connected components, emitted bottom-up
//     (every component after all components its states depend on). Each
//     component is flagged Cyclic when it has more than one state or a
//     self-loop. Inside/outside use it to find the states that need
//     fixed-point iteration.
//   - TopologicalSort: a tails-before-heads order of all states, or
//     ErrCycleDetected when the dependency graph is cyclic.
//   - EpsilonCycles: whether the epsilon-only transitions of an FSA-shaped
//     hypergraph contain a cycle.
//
// Determinism:
//
//	Roots are tried in ascending StateID order and dependencies in arc
//	insertion order, so equal inputs give identical orders.
//
// Complexity:
//
//   - Components:      Time O(V + Σ|tails|), Memory O(V + Σ|tails|)
//   - TopologicalSort: same as Components
//   - EpsilonCycles:   Time O(V + E), Memory O(V + E)
//
// Errors:
//
//   - ErrGraphNil        hypergraph pointer is nil
//   - ErrCycleDetected   TopologicalSort on a cyclic dependency graph
//   - core.ErrNotFsm     EpsilonCycles on a non-FSA input
//   - context.Canceled   traversal canceled via WithContext
package dfs
