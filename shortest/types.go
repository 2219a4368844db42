package shortest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// Defaults for Options.
const (
	DefaultDelta         = 1e-9
	DefaultMaxIterations = 1000
)

// Sentinel errors returned by the inside/outside implementation.
var (
	// ErrNilGraph indicates that a nil hypergraph was passed in.
	ErrNilGraph = errors.New("shortest: hypergraph is nil")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("shortest: invalid option supplied")

	// ErrConvergence indicates that a cyclic component did not converge
	// within MaxIterations sweeps.
	ErrConvergence = errors.New("shortest: fixed-point iteration did not converge")

	// ErrResultMismatch indicates an inside Result computed for another hypergraph.
	ErrResultMismatch = errors.New("shortest: result does not match hypergraph")
)

// ConvergenceError reports the component that failed to converge.
type ConvergenceError struct {
	Iterations int          // sweeps performed
	State      core.StateID // first member still moving after the last sweep
}

// Error implements error.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: state %d still changing after %d iterations",
		ErrConvergence.Error(), e.State, e.Iterations)
}

// Unwrap returns ErrConvergence.
func (e *ConvergenceError) Unwrap() error { return ErrConvergence }

// Options configures Inside and Outside.
//
// Delta         – tolerance for the fixed-point test (ApproxEqual), ≥ 0.
// MaxIterations – sweeps per cyclic component before ErrConvergence, ≥ 1.
// Logger        – destination of Debug diagnostics.
type Options struct {
	Delta         float64
	MaxIterations int
	Logger        *slog.Logger

	// err records the first invalid option.
	err error
}

// Option represents a functional option for Inside and Outside.
type Option func(*Options)

// DefaultOptions returns Delta=1e-9, MaxIterations=1000 and slog.Default().
func DefaultOptions() Options {
	return Options{
		Delta:         DefaultDelta,
		MaxIterations: DefaultMaxIterations,
		Logger:        slog.Default(),
	}
}

// WithDelta sets the convergence tolerance. Negative values are rejected
// with ErrOptionViolation when the algorithm runs.
func WithDelta(d float64) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: delta must be non-negative (%g)", ErrOptionViolation, d)
			return
		}
		o.Delta = d
	}
}

// WithMaxIterations sets the sweep cap. Values < 1 are rejected with
// ErrOptionViolation when the algorithm runs.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: max iterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
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

func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// Result holds one weight per state.
type Result[W weight.Weight[W]] struct {
	// Weights[s] is the weight of state s.
	Weights []W

	final core.StateID
}

// At returns the weight of s, or Zero for ids outside the result.
func (r *Result[W]) At(s core.StateID) W {
	if s < 0 || int(s) >= len(r.Weights) {
		return weight.Zero[W]()
	}

	return r.Weights[s]
}

// Total returns the weight at the final state (Zero without a final state).
func (r *Result[W]) Total() W { return r.At(r.final) }
