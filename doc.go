// Package hyperlath is an in-memory engine for weighted hypergraphs: packed
// forests, lattices and weighted finite-state acceptors/transducers over one
// generic semiring interface.
//
// What is inside
//
//	A single container type, core.Hypergraph[W], holds both shapes:
//		• FSA arcs: tails=[source, label-state], head=destination
//		• Grammar rules: any number of tails, including zero (axioms)
//
//	Weights are semirings (weight.Weight[W]):
//		• Viterbi (max, ×) for best-path probabilities
//		• Log (log-add, +) for total probabilities
//		• Feature (sparse feature vectors scored under Viterbi rules)
//		• Expectation (probability paired with expected feature counts)
//
// Algorithms:
//
//	bfs/         : reachability and in-place Trim
//	dfs/         : strongly connected components, topological order, ε-cycle detection
//	shortest/    : Inside and Outside (acyclic sweep, fixed point on cycles)
//	prune/       : Beam pruning, BestPath, BestPathHypergraph, NBest
//	dijkstra/    : Knuth's generalization of Dijkstra for superior weights
//	determinize/ : weighted determinization with ε/ρ/φ/σ handling
//	compose/     : FSA ∘ FSA or hypergraph ∘ FSA composition
//
// Surfaces:
//
//	symbol/   : labels and an NFC-normalized vocabulary
//	hgtext/   : the line-oriented text format
//	builder/  : deterministic fixtures (strings, sausages, charts, random DAGs)
//	config/   : YAML + environment configuration with validation
//	cmd/hyp/  : the command-line tool
//
// Quick ASCII example:
//
//	    s0 ──a/0.5──▶ s1 ──b/0.5──▶ s2
//	     └─────────a/0.125─────────┘
//
//	inside(s2) = max(0.5·0.5, 0.125) = 0.25 under Viterbi.
//
//	go get github.com/katalvlaran/hyperlath
package hyperlath
