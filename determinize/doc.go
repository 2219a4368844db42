// Package determinize turns a weighted FSA-shaped core.Hypergraph into an
// equivalent deterministic one by weighted subset construction.
//
// Every output state is a subset of (input state, residual weight) pairs.
// For a symbol x the successors of all members are merged with ⊕, the ⊕ of
// the merged residuals becomes the output arc weight and is divided out of
// the new subset (weight pushing), so equal subsets are found again and the
// construction terminates on the usual twins-property inputs.
//
// Special symbols each have an independent flag; a "normal" symbol is an
// ordinary alphabet symbol, otherwise it has its automaton meaning:
//
//	ε  epsilon closure; subsets keep states with non-ε out-arcs and the final state.
//	σ  wildcard: fires on every explicit symbol of the subset and on the rest,
//	   which is emitted as one ρ arc (so ρ must be special too).
//	ρ  "other": fires on symbols the state has no explicit arc for; the rest
//	   is emitted as one ρ arc.
//	φ  failure: on a symbol the state cannot match, follow φ (⊗ its weight)
//	   without consuming, bounded by the state count. φ never appears in the output.
//
// The output final state is the subset {(final, One)}; any other subset that
// contains the input final state with residual r gets an ε arc of weight r to it.
//
// Options:
//
//	– WithEpsilonNormal, WithRhoNormal, WithPhiNormal, WithSigmaNormal, WithSpecialSymbols.
//	– WithMaxStates(n):          output state cap (default 1<<20), ErrLimitExceeded beyond it.
//	– WithDelta(d):              residual quantization for subset identity (default 1e-6).
//	– WithClosureCacheSize(n):   LRU capacity of epsilon closures (default 4096).
//	– WithResultProperties(p):   indices stored by the output (default in and out).
//	– WithLogger(l):             Debug diagnostics (default slog.Default()).
//
// Errors:
//
//	– core.ErrInvalidInput      non-FSA input or missing start state.
//	– core.ErrUnsupportedInput  non-distance weight, ε cycles with ε special,
//	                            a σ remainder while ρ is normal, or an accepting
//	                            subset that reads a normal ε.
//	– ErrLimitExceeded          wrapped by *LimitError.
//	– ErrOptionViolation        invalid option values.
package determinize
