// Package dijkstra defines result types and configuration options for the
// best-first derivation search.
//
// Options:
//
//	– WithMaxCost(c):          settle nothing whose cost exceeds c (default +Inf).
//	– WithInfCostThreshold(t): arcs with cost ≥ t are impassable (default +Inf).
//	– WithLogger(l):           Debug diagnostics (default slog.Default()).
package dijkstra

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *core.Hypergraph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: hypergraph is nil")

	// ErrNotIdempotent indicates a weight whose ⊕ does not select a best operand.
	ErrNotIdempotent = fmt.Errorf("%w: dijkstra requires an idempotent weight", core.ErrUnsupportedInput)

	// ErrNotMonotone indicates an arc weight better than One, which would
	// let a settled state improve later.
	ErrNotMonotone = fmt.Errorf("%w: dijkstra: arc weight better than one", core.ErrUnsupportedInput)

	// ErrBadMaxCost indicates that MaxCost was set to NaN.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be a number")

	// ErrBadInfThreshold indicates that InfCostThreshold was set to zero or
	// a negative value, which would make every arc impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfCostThreshold must be positive")
)

// NoArc marks states without a back-pointer (axioms, lexical and unsettled states).
const NoArc core.ArcID = -1

// Options configures Dijkstra.
//
// MaxCost          – states whose cost exceeds this value are not settled.
// InfCostThreshold – arcs whose cost is ≥ this threshold are skipped.
// Logger           – destination of Debug diagnostics.
type Options struct {
	MaxCost          float64
	InfCostThreshold float64
	Logger           *slog.Logger
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMaxCost sets a cost cap. States whose best cost would exceed it are
// left unsettled (weight Zero). NaN panics with ErrBadMaxCost.
func WithMaxCost(c float64) Option {
	return func(o *Options) {
		if math.IsNaN(c) {
			panic(ErrBadMaxCost.Error())
		}
		o.MaxCost = c
	}
}

// WithInfCostThreshold treats arcs whose Cost is ≥ t as impassable.
// Values ≤ 0 panic with ErrBadInfThreshold.
func WithInfCostThreshold(t float64) Option {
	return func(o *Options) {
		if !(t > 0) {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfCostThreshold = t
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns an Options struct with no caps.
//
// Defaults:
//   - MaxCost:          +Inf (settle everything reachable).
//   - InfCostThreshold: +Inf (no arc is impassable).
//   - Logger:           slog.Default().
func DefaultOptions() Options {
	return Options{
		MaxCost:          math.Inf(1),
		InfCostThreshold: math.Inf(1),
		Logger:           slog.Default(),
	}
}

// Result holds the best weight and back-pointer of every state.
type Result[W weight.Weight[W]] struct {
	// Weights[s] is the best derivation weight of s (Zero if unsettled).
	Weights []W
	// Back[s] is the arc of the best derivation of s, or NoArc.
	Back []core.ArcID
	// Settled[s] reports whether s was popped from the queue.
	Settled []bool

	h *core.Hypergraph[W]
}

// Total returns the weight of the final state (Zero without one).
func (r *Result[W]) Total() W {
	f := r.h.Final()
	if f == core.NoState {
		return weight.Zero[W]()
	}

	return r.Weights[f]
}

// Derivation returns the arcs of the best derivation of s in pre-order:
// the back-pointer of s, then the derivations of its tails left to right.
// It returns nil when s has no back-pointer.
func (r *Result[W]) Derivation(s core.StateID) []core.ArcID {
	var out []core.ArcID
	var walk func(core.StateID)
	walk = func(q core.StateID) {
		id := r.Back[q]
		if id == NoArc {
			return
		}
		out = append(out, id)
		for _, t := range r.h.Arc(id).Tails {
			walk(t)
		}
	}
	walk(s)

	return out
}
