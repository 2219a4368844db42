// SPDX-License-Identifier: MIT
//
// Package builder assembles deterministic hypergraph fixtures: string
// acceptors, confusion networks (sausages), binary-bracketing charts and
// seeded random acceptors.
//
// Usage:
//
//	vocab := symbol.NewVocabulary()
//	h, err := builder.Build[weight.Viterbi](
//		[]core.Option{core.WithInArcs()},
//		[]builder.Option{builder.WithVocabulary(vocab), builder.WithSeed(7)},
//		builder.String("a", "b", "c"),
//	)
//
// Contract:
//   - Constructors validate their parameters and return sentinel errors; they never panic.
//   - Option constructors (WithX) panic on meaningless values.
//   - Every constructor appends its own states. The last constructor that
//     sets start/final markers wins.
//   - The same inputs, options and seed always produce the same StateIDs,
//     ArcIDs and weights.
//
// Weights come from the WeightFn option. Its float64 result is parsed with
// weight.Parse, so it must be a valid literal for W (e.g. ln-probabilities for
// weight.Log). Without a WeightFn every arc weighs One.
package builder
