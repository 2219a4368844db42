// SPDX-License-Identifier: MIT

// Package symbol defines interned symbol identifiers, the reserved special
// symbols (epsilon, rho, phi, sigma), label pairs, and a concurrency-safe
// Vocabulary that maps token strings to identifiers and back.
//
// Reserved identifiers:
//
//	NoSymbol  (-1) - absence of a symbol (unlabeled state).
//	Epsilon   ( 0) - empty string; consumes nothing.
//	Rho       ( 1) - default arc: "any symbol not matched explicitly".
//	Phi       ( 2) - failure arc: fall back without consuming.
//	Sigma     ( 3) - wildcard: matches any symbol.
//
// User symbols start at FirstUser.
package symbol

import "fmt"

// ID is an interned symbol identifier.
type ID int32

// Reserved symbol identifiers.
const (
	NoSymbol ID = -1
	Epsilon  ID = 0
	Rho      ID = 1
	Phi      ID = 2
	Sigma    ID = 3

	// FirstUser is the first identifier handed out for user tokens.
	FirstUser ID = 4
)

// Reserved spellings used by Vocabulary and the text format.
const (
	EpsilonString = "<eps>"
	RhoString     = "<rho>"
	PhiString     = "<phi>"
	SigmaString   = "<sigma>"
)

// IsSpecial reports whether id is one of epsilon, rho, phi or sigma.
func IsSpecial(id ID) bool {
	return id >= Epsilon && id < FirstUser
}

// IsEpsilonLike reports whether id consumes no input (epsilon or no symbol).
func IsEpsilonLike(id ID) bool {
	return id == Epsilon || id == NoSymbol
}

// Side selects one projection of a Label.
type Side int

const (
	// Input selects Label.In.
	Input Side = iota
	// Output selects Label.Out.
	Output
)

// String implements fmt.Stringer.
func (s Side) String() string {
	if s == Output {
		return "output"
	}

	return "input"
}

// Label is an (input, output) symbol pair carried by a lexical state.
// An acceptor label has In == Out.
type Label struct {
	In  ID
	Out ID
}

// NoLabel marks an unlabeled (structural) state.
var NoLabel = Label{In: NoSymbol, Out: NoSymbol}

// Acceptor returns the label (id, id).
func Acceptor(id ID) Label { return Label{In: id, Out: id} }

// Pair returns the label (in, out).
func Pair(in, out ID) Label { return Label{In: in, Out: out} }

// IsNone reports whether l is NoLabel.
func (l Label) IsNone() bool { return l.In == NoSymbol && l.Out == NoSymbol }

// IsEpsilon reports whether both projections consume nothing.
func (l Label) IsEpsilon() bool { return IsEpsilonLike(l.In) && IsEpsilonLike(l.Out) }

// IsAcceptor reports whether In == Out.
func (l Label) IsAcceptor() bool { return l.In == l.Out }

// Side returns the projection selected by s.
func (l Label) Side(s Side) ID {
	if s == Output {
		return l.Out
	}

	return l.In
}

// String renders the label with raw ids; use Vocabulary.Format for tokens.
func (l Label) String() string {
	if l.IsAcceptor() {
		return fmt.Sprintf("%d", l.In)
	}

	return fmt.Sprintf("%d:%d", l.In, l.Out)
}
