// Package core provides the weighted Hypergraph container shared by every
// algorithm in this module: a derivation forest whose arcs have one head and
// an ordered list of tails.
//
// Shapes:
//
//   - One structural tail (optionally followed by one lexical tail) is an FSA
//     transition: tails=[p, lex(a)], head=q encodes p --a--> q, and
//     tails=[p] encodes an epsilon transition.
//   - Two or more structural tails is a grammar-rule instantiation; lexical
//     tails interleaved among them are the rule's terminals.
//   - Zero tails is an axiom.
//
// A lexical state is a state carrying a symbol.Label. Lexical states are
// leaves: they may appear only as tails. Unlabeled (structural) states are
// nonterminal instantiations or automaton states.
//
// Storage:
//
//   - Arcs live in an index-based arena ([]Arc[W], addressed by ArcID); no arc
//     is shared between two hypergraphs.
//   - The in-arc index (arcs by head) and out-arc index (arcs by first tail) are
//     materialized only when requested at construction (WithInArcs,
//     WithOutArcs). Nothing is indexed by default.
//
// Configuration Options:
//
//	– WithInArcs()     store arcs grouped by head; required by inside/outside.
//	– WithOutArcs()    store arcs grouped by first tail; required by
//	                   determinization and by compose on its right input.
//	– WithCapacity(s,a) pre-size the state and arc arenas.
//
// Mutation discipline:
//
//   - AddArc during ForArcs/ForInArcs/ForArcsOutFirstTail returns
//     ErrMutationDuringIteration. Use DeferredArcs to collect arcs during a
//     traversal and Commit them afterwards.
//   - RemoveArcs and RemoveStates build the new arena and both indices
//     off to the side and swap them in a single step, so a deletion is either
//     fully applied or not at all.
//
// Concurrency:
//
//	A Hypergraph is owned by one goroutine while it is being built or mutated.
//	Once built, it may be shared read-only across goroutines: no algorithm in
//	this module mutates its inputs, outputs are always fresh containers.
//
// Errors:
//
//	ErrInvalidInput            - malformed hypergraph or violated precondition.
//	ErrUnsupportedInput        - well-formed input outside an algorithm's capability.
//	ErrStateNotFound           - an arc or call referenced a missing state.
//	ErrLexicalHead             - a lexical state was used as an arc head.
//	ErrIndexMissing            - an adjacency index was not requested at construction.
//	ErrNotFsm                  - an FSA-only operation received a CFG-shaped input.
//	ErrMutationDuringIteration - AddArc/RemoveArcs called inside an arc visitor.
package core
