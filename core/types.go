// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: StateID/ArcID, Arc, Hypergraph, Properties, Option, sentinel errors
//       and the New constructor.

package core

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// Sentinel errors for core hypergraph operations.
var (
	// ErrInvalidInput indicates a structurally malformed hypergraph or a
	// violated algorithm precondition.
	ErrInvalidInput = errors.New("core: invalid input")

	// ErrUnsupportedInput indicates well-formed input outside an algorithm's
	// documented capability.
	ErrUnsupportedInput = errors.New("core: unsupported input")

	// ErrStateNotFound indicates a reference to a state that does not exist.
	ErrStateNotFound = fmt.Errorf("%w: state not found", ErrInvalidInput)

	// ErrLexicalHead indicates a lexical (labeled) state used as an arc head.
	ErrLexicalHead = fmt.Errorf("%w: lexical state cannot be an arc head", ErrInvalidInput)

	// ErrNotFsm indicates an FSA-only operation received a non-FSA hypergraph.
	ErrNotFsm = fmt.Errorf("%w: hypergraph is not FSA-shaped", ErrInvalidInput)

	// ErrIndexMissing indicates an adjacency index that was not requested at construction.
	ErrIndexMissing = errors.New("core: adjacency index not stored")

	// ErrMutationDuringIteration indicates AddArc/RemoveArcs from inside an arc visitor.
	ErrMutationDuringIteration = errors.New("core: mutation during arc iteration")
)

// StateID identifies a state within one Hypergraph.
type StateID int32

// NoState is the absent state (unset start/final, removed state).
const NoState StateID = -1

// ArcID identifies an arc within one Hypergraph's arena.
type ArcID int32

// Arc is a directed hyperedge. Tails is owned by the container and must be
// treated as read-only by callers.
type Arc[W weight.Weight[W]] struct {
	Head   StateID
	Tails  []StateID
	Weight W
}

// Properties selects which adjacency indices a Hypergraph materializes.
type Properties uint8

const (
	// StoreInArcs keeps arcs grouped by head.
	StoreInArcs Properties = 1 << iota
	// StoreOutArcs keeps arcs grouped by first tail.
	StoreOutArcs
)

// Has reports whether all bits of q are set.
func (p Properties) Has(q Properties) bool { return p&q == q }

// Option configures a Hypergraph before creation.
type Option func(*settings)

type settings struct {
	props    Properties
	stateCap int
	arcCap   int
}

// WithInArcs requests the in-arc (by head) index.
func WithInArcs() Option {
	return func(s *settings) { s.props |= StoreInArcs }
}

// WithOutArcs requests the out-arc (by first tail) index.
func WithOutArcs() Option {
	return func(s *settings) { s.props |= StoreOutArcs }
}

// WithProperties requests every index set in p.
func WithProperties(p Properties) Option {
	return func(s *settings) { s.props |= p }
}

// WithCapacity pre-sizes the state and arc arenas. Negative values are ignored.
func WithCapacity(states, arcs int) Option {
	return func(s *settings) {
		if states > 0 {
			s.stateCap = states
		}
		if arcs > 0 {
			s.arcCap = arcs
		}
	}
}

// Hypergraph is a weighted derivation forest over the semiring W.
//
// labels[s] is the label of state s (symbol.NoLabel for structural states).
// inArcs/outArcs are nil unless the corresponding Properties bit is set.
// lexical deduplicates LabelState lookups.
// iterating counts active visitors; mutations are refused while it is > 0.
// It is atomic so that concurrent readers of a shared hypergraph do not race.
type Hypergraph[W weight.Weight[W]] struct {
	props Properties

	labels []symbol.Label
	arcs   []Arc[W]

	inArcs  [][]ArcID // head → arcs
	outArcs [][]ArcID // first tail → arcs

	lexical map[symbol.Label]StateID

	start StateID
	final StateID

	iterating atomic.Int32
}

// New creates an empty Hypergraph. By default no adjacency index is stored,
// no start and no final state are set.
// Complexity: O(1) plus requested capacity.
func New[W weight.Weight[W]](opts ...Option) *Hypergraph[W] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	h := &Hypergraph[W]{
		props:   s.props,
		labels:  make([]symbol.Label, 0, s.stateCap),
		arcs:    make([]Arc[W], 0, s.arcCap),
		lexical: make(map[symbol.Label]StateID),
		start:   NoState,
		final:   NoState,
	}
	if h.props.Has(StoreInArcs) {
		h.inArcs = make([][]ArcID, 0, s.stateCap)
	}
	if h.props.Has(StoreOutArcs) {
		h.outArcs = make([][]ArcID, 0, s.stateCap)
	}

	return h
}
