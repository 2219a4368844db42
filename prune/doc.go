// Package prune extracts best derivations from a weighted core.Hypergraph and
// removes arcs that fall outside a beam around the best derivation.
//
// Best path:
//
//   - BestPath walks down from the final state. At every state it picks the
//     first in-arc (in insertion order) whose arc weight ⊗ tail insides
//     equals the inside weight of the state; if rounding hides the match it
//     takes the Better one. Tails are then expanded left to right, so the
//     arcs come out in pre-order.
//   - WithSearch(SearchKnuth) uses dijkstra back-pointers instead of the
//     inside pass; it needs superior weights but no fixed-point iteration on cycles.
//   - Both require an Idempotent weight.
//
// Beam:
//
//   - Beam computes inside and outside weights and deletes every arc whose
//     posterior cost exceeds the cost of the best single derivation by more
//     than the margin (in nats, see weight.Weight.Cost). For weights whose ⊕
//     sums (Log, Expectation) the best derivation comes from a max-score
//     projection, not from the inside total. Deletion is atomic and is followed by
//     bfs.Trim, so only useful states remain.
//   - Beam works on a clone; BeamInPlace mutates its argument.
//
// NBest supports n = 1 only; larger values are clamped with a warning.
package prune
