// SPDX-License-Identifier: MIT

// Package weight defines the semiring abstraction every hypergraph algorithm
// is parameterized on, together with four concrete weights:
//
//	Viterbi     - max-times over probabilities (Zero=0, One=1, larger is better).
//	Log         - log-probabilities with log-sum-exp plus (Zero=-Inf, One=0).
//	Feature     - log-domain score plus a sparse feature vector; Plus selects the
//	              better operand, Times adds scores and accumulates features.
//	Expectation - ⟨p, r⟩ pairs of the expectation semiring used for EM training.
//
// Viterbi and Log are distance-like: a single scalar fully determines the
// weight (w == construct(w.Value())). Feature and Expectation carry auxiliary
// sparse state and are feature-like; algorithms that pool or hash weights by
// value (determinization) refuse them.
//
// Algebraic contract for every implementation:
//
//	Plus is associative, commutative, with Zero as identity.
//	Times is associative, with One as identity and Zero as annihilator.
//	Times distributes over Plus.
//
// Every weight parses its own literal form: "<scalar>" or, for feature-like
// weights, "<scalar>[<id>=<value>,...]". Malformed literals fail with a
// *ParseError wrapping ErrParse.
package weight

// Property is a bit set describing algebraic properties of a weight type.
type Property uint8

const (
	// Distance marks weights fully determined by their scalar Value().
	Distance Property = 1 << iota
	// Idempotent marks weights with a ⊕ a == a (⊕ selects a best operand).
	Idempotent
	// Commutative marks weights whose Times is commutative.
	Commutative
	// Path marks weights where ⊕ always returns one of its operands.
	Path
)

// Has reports whether all bits of q are set in p.
func (p Property) Has(q Property) bool { return p&q == q }

// Weight is the semiring contract. W is the implementing type itself, so
// algorithms are written once as func F[W Weight[W]](...).
//
// Zero and One ignore their receiver; call them on the zero value of W
// (see the package-level Zero and One helpers).
type Weight[W any] interface {
	// Zero returns the ⊕ identity and ⊗ annihilator.
	Zero() W
	// One returns the ⊗ identity.
	One() W
	// Plus combines alternatives (⊕).
	Plus(W) W
	// Times composes sequentially (⊗).
	Times(W) W
	// Divide returns x with other ⊗ x == receiver. It fails when other is Zero.
	Divide(other W) (W, error)
	// Equal is exact structural equality.
	Equal(W) bool
	// ApproxEqual compares scalars (and features) within delta.
	ApproxEqual(other W, delta float64) bool
	// Better reports a strict preference of the receiver over other in the
	// natural order of the semiring.
	Better(W) bool
	// Cost returns a log-domain cost (lower is better) used for beam margins.
	Cost() float64
	// Value returns the scalar component.
	Value() float64
	// Properties returns the algebraic property bits of the type.
	Properties() Property
	// String formats the canonical literal; Parse(String()) round-trips.
	String() string
	// Parse reads a literal of the receiver's type.
	Parse(string) (W, error)
}

// Zero returns the Zero of W.
func Zero[W Weight[W]]() W {
	var w W

	return w.Zero()
}

// One returns the One of W.
func One[W Weight[W]]() W {
	var w W

	return w.One()
}

// Parse parses a literal of type W.
func Parse[W Weight[W]](s string) (W, error) {
	var w W

	return w.Parse(s)
}

// Props returns the property bits of W.
func Props[W Weight[W]]() Property {
	var w W

	return w.Properties()
}

// IsDistance reports whether W is distance-like.
func IsDistance[W Weight[W]]() bool { return Props[W]().Has(Distance) }

// IsZero reports whether w equals Zero.
func IsZero[W Weight[W]](w W) bool { return w.Equal(w.Zero()) }

// Sum folds ws with Plus, starting from Zero.
func Sum[W Weight[W]](ws ...W) W {
	acc := Zero[W]()
	for _, w := range ws {
		acc = acc.Plus(w)
	}

	return acc
}

// Product folds ws with Times, starting from One.
func Product[W Weight[W]](ws ...W) W {
	acc := One[W]()
	for _, w := range ws {
		acc = acc.Times(w)
	}

	return acc
}

// Best returns the index of the best weight in ws (first wins on ties), or -1.
func Best[W Weight[W]](ws []W) int {
	best := -1
	for i := range ws {
		if best < 0 || ws[i].Better(ws[best]) {
			best = i
		}
	}

	return best
}
