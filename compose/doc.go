// Package compose intersects a weighted hypergraph with a weighted FSA.
//
// The left operand is any core.Hypergraph (a grammar, a lattice, an FSA); the
// right operand must be FSA-shaped with a start state. The result derives
// exactly the left derivations whose terminal yield the right automaton
// accepts, with weights multiplied.
//
// Construction (eager Earley / Bar-Hillel):
//
//   - An output state is a triple (left state, right start, right end): the
//     left state derives a string that takes the right automaton from start to end.
//   - Prediction starts at (left final, right start) and walks in-arcs top-down.
//   - Tails are expanded left to right. A terminal consumes one right
//     transition, first following right ε transitions. A nonterminal is
//     predicted at the current right state and threaded with each completion.
//   - The output final state is a fresh state reached by one ε arc from every
//     completed (left final, right start, end) whose end reaches the right
//     final through ε; the arc weight is that ε distance.
//
// For FSA-shaped left input the right start of every triple is the right
// start state, so the result is again an FSA.
//
// Right special symbols:
//
//	σ  matches every terminal.
//	ρ  matches terminals without an explicit arc at that right state.
//	φ  followed without consuming when nothing else matches (backoff).
//
// A σ or ρ arc whose output side repeats the special symbol outputs the
// matched terminal.
//
// Options:
//
//	– WithLabelSide(s):          left projection matched against right input (default LeftOutput).
//	– WithInArcs, WithOutArcs:   indices stored by the result (default both).
//	– WithMaxStates(n):          triple cap (default 1<<20), ErrLimitExceeded beyond it.
//	– WithClosureCacheSize(n):   LRU capacity of right ε closures (default 4096).
//	– WithLogger(l):             Debug diagnostics (default slog.Default()).
//
// Errors:
//
//	– core.ErrInvalidInput      nil input, non-FSA right side, missing right start.
//	– core.ErrUnsupportedInput  right ε cycles, or right arcs with ε input and non-ε output.
//	– ErrLimitExceeded          wrapped by *LimitError.
//	– ErrOptionViolation        invalid option values.
//
// Inputs are never mutated; a right FSA may be shared by concurrent calls.
package compose
