package prune

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/weight"
)

var (
	// ErrNoDerivation indicates that the final state has no derivation.
	ErrNoDerivation = errors.New("prune: final state is not derivable")

	// ErrOptionViolation indicates an invalid option or argument.
	ErrOptionViolation = errors.New("prune: invalid option supplied")
)

// costSlack absorbs rounding in posterior costs so the best derivation
// always survives a zero margin.
const costSlack = 1e-9

// Search selects how best weights are computed.
type Search int

const (
	// SearchInside uses shortest.Inside (default).
	SearchInside Search = iota
	// SearchKnuth uses dijkstra.Dijkstra back-pointers.
	SearchKnuth
)

// String implements fmt.Stringer.
func (s Search) String() string {
	if s == SearchKnuth {
		return "knuth"
	}

	return "inside"
}

// Options configures the functions of this package.
type Options struct {
	Search        Search
	Delta         float64
	MaxIterations int
	Logger        *slog.Logger

	err error
}

// Option is a functional option.
type Option func(*Options)

// DefaultOptions returns SearchInside with the shortest package defaults.
func DefaultOptions() Options {
	return Options{
		Search:        SearchInside,
		Delta:         shortest.DefaultDelta,
		MaxIterations: shortest.DefaultMaxIterations,
		Logger:        slog.Default(),
	}
}

// WithSearch selects the best-weight computation of BestPath.
func WithSearch(s Search) Option {
	return func(o *Options) {
		if s != SearchInside && s != SearchKnuth {
			o.err = fmt.Errorf("%w: unknown search %d", ErrOptionViolation, int(s))
			return
		}
		o.Search = s
	}
}

// WithDelta forwards the fixed-point tolerance to shortest.
func WithDelta(d float64) Option { return func(o *Options) { o.Delta = d } }

// WithMaxIterations forwards the fixed-point sweep cap to shortest.
func WithMaxIterations(n int) Option { return func(o *Options) { o.MaxIterations = n } }

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

// shortestOptions translates o for shortest.Inside and shortest.Outside.
func (o Options) shortestOptions() []shortest.Option {
	return []shortest.Option{
		shortest.WithDelta(o.Delta),
		shortest.WithMaxIterations(o.MaxIterations),
		shortest.WithLogger(o.Logger),
	}
}

// Derivation is one derivation of the final state.
type Derivation[W weight.Weight[W]] struct {
	// Arcs in pre-order: the arc of a state precedes the arcs of its tails.
	Arcs []core.ArcID
	// Weight is the ⊗ of the arc weights.
	Weight W
}
