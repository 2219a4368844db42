// Package shortest computes inside and outside weights over a weighted
// core.Hypergraph: the generalized shortest-distance problem of a semiring.
//
// Inside weight of a state s:
//
//	inside(s) = base(s) ⊕ ⨁_{arcs a into s} w(a) ⊗ ⨂_{t ∈ tails(a)} inside(t)
//
// where base(s) is One for lexical states, for the start state, and (when no
// start state is set) for every structural state without in-arcs. Everything
// else starts at Zero. The inside weight of the final state is the ⊕ over
// all derivations of the ⊗ of their arc weights.
//
// Outside weight is the symmetric top-down quantity with outside(final)=One.
// ArcPosterior combines both into the total weight of derivations using an arc.
//
// Cycles:
//
//	States are processed by dfs.Components (Tarjan, bottom-up). Acyclic
//	components are evaluated once. A cyclic component (epsilon loops,
//	unary rule cycles) is iterated Jacobi-style: every sweep recomputes all
//	members from the previous sweep's values until each member moves by at
//	most Delta (ApproxEqual). After MaxIterations sweeps the computation
//	fails with *ConvergenceError.
//
// Complexity:
//
//   - Acyclic input: Time O(V + Σ|tails|), Space O(V + Σ|tails|).
//   - Each cyclic component C adds O(k·Σ_{a into C}|tails(a)|) for k sweeps.
//
// Options:
//
//	– WithDelta(d):          convergence tolerance, d ≥ 0 (default 1e-9).
//	– WithMaxIterations(n):  sweep cap per cyclic component, n ≥ 1 (default 1000).
//	– WithLogger(l):         *slog.Logger for Debug diagnostics (default slog.Default()).
//
// Errors (sentinel):
//
//	– ErrNilGraph          if the hypergraph pointer is nil.
//	– core.ErrIndexMissing if Inside is called without the in-arc index.
//	– ErrOptionViolation   for a negative delta or a non-positive iteration cap.
//	– ErrConvergence       wrapped by *ConvergenceError when the cap is hit.
//
// Determinism:
//
//	Components, members and arcs are visited in fixed orders, so the same
//	input always yields bit-identical weights.
package shortest
