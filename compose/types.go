package compose

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
)

// Defaults for Options.
const (
	DefaultMaxStates        = 1 << 20
	DefaultClosureCacheSize = 4096
)

var (
	// ErrLimitExceeded indicates that the output grew past MaxStates.
	ErrLimitExceeded = errors.New("compose: state limit exceeded")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("compose: invalid option supplied")
)

// LimitError reports the cap that was hit.
type LimitError struct {
	Limit int
}

// Error implements error.
func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: more than %d output states", ErrLimitExceeded.Error(), e.Limit)
}

// Unwrap returns ErrLimitExceeded.
func (e *LimitError) Unwrap() error { return ErrLimitExceeded }

// LabelSide selects the projection of a left terminal that is matched
// against the input side of the right automaton.
type LabelSide int

const (
	// LeftOutput matches the left output label (the usual l ∘ r).
	LeftOutput LabelSide = iota
	// LeftInput matches the left input label.
	LeftInput
)

// side maps s onto a label projection.
func (s LabelSide) side() symbol.Side {
	if s == LeftInput {
		return symbol.Input
	}

	return symbol.Output
}

// String implements fmt.Stringer.
func (s LabelSide) String() string { return s.side().String() }

// Options configures Compose.
type Options struct {
	Side             LabelSide
	ResultProperties core.Properties
	MaxStates        int
	ClosureCacheSize int
	Logger           *slog.Logger

	indexSet bool
	err      error
}

// Option is a functional option for Compose.
type Option func(*Options)

// DefaultOptions returns LeftOutput matching, both result indices,
// MaxStates=1<<20, a 4096-entry closure cache and slog.Default().
func DefaultOptions() Options {
	return Options{
		Side:             LeftOutput,
		ResultProperties: core.StoreInArcs | core.StoreOutArcs,
		MaxStates:        DefaultMaxStates,
		ClosureCacheSize: DefaultClosureCacheSize,
		Logger:           slog.Default(),
	}
}

// WithLabelSide selects the left projection matched against the right input.
func WithLabelSide(s LabelSide) Option {
	return func(o *Options) {
		if s != LeftOutput && s != LeftInput {
			o.err = fmt.Errorf("%w: unknown label side %d", ErrOptionViolation, int(s))
			return
		}
		o.Side = s
	}
}

// WithInArcs makes the result store the in-arc index. The first of
// WithInArcs/WithOutArcs replaces the default, later ones add to it.
func WithInArcs() Option { return withIndex(core.StoreInArcs) }

// WithOutArcs makes the result store the out-arc index.
func WithOutArcs() Option { return withIndex(core.StoreOutArcs) }

func withIndex(p core.Properties) Option {
	return func(o *Options) {
		if !o.indexSet {
			o.ResultProperties, o.indexSet = 0, true
		}
		o.ResultProperties |= p
	}
}

// WithMaxStates caps the number of output triples (n ≥ 1).
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: max states must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithClosureCacheSize sets the LRU capacity of right ε closures (n ≥ 1).
func WithClosureCacheSize(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: closure cache size must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.ClosureCacheSize = n
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
