package determinize

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/hyperlath/core"
)

// Defaults for Options.
const (
	DefaultMaxStates        = 1 << 20
	DefaultDelta            = 1e-6
	DefaultClosureCacheSize = 4096
)

var (
	// ErrLimitExceeded indicates that the output grew past MaxStates.
	ErrLimitExceeded = errors.New("determinize: state limit exceeded")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("determinize: invalid option supplied")
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

// Flags marks special symbols that are treated as ordinary ("normal") symbols.
type Flags uint8

const (
	// EpsilonNormal treats ε as an ordinary symbol (no closure).
	EpsilonNormal Flags = 1 << iota
	// RhoNormal treats ρ as an ordinary symbol.
	RhoNormal
	// PhiNormal treats φ as an ordinary symbol.
	PhiNormal
	// SigmaNormal treats σ as an ordinary symbol.
	SigmaNormal
)

// Has reports whether all bits of g are set.
func (f Flags) Has(g Flags) bool { return f&g == g }

// Options configures Determinize.
type Options struct {
	Flags            Flags
	MaxStates        int
	Delta            float64
	ClosureCacheSize int
	ResultProperties core.Properties
	Logger           *slog.Logger

	err error
}

// Option is a functional option for Determinize.
type Option func(*Options)

// DefaultOptions returns every special symbol special, MaxStates=1<<20,
// Delta=1e-6, a 4096-entry closure cache and both output indices.
func DefaultOptions() Options {
	return Options{
		MaxStates:        DefaultMaxStates,
		Delta:            DefaultDelta,
		ClosureCacheSize: DefaultClosureCacheSize,
		ResultProperties: core.StoreInArcs | core.StoreOutArcs,
		Logger:           slog.Default(),
	}
}

// WithEpsilonNormal treats ε as an ordinary symbol.
func WithEpsilonNormal() Option { return func(o *Options) { o.Flags |= EpsilonNormal } }

// WithRhoNormal treats ρ as an ordinary symbol.
func WithRhoNormal() Option { return func(o *Options) { o.Flags |= RhoNormal } }

// WithPhiNormal treats φ as an ordinary symbol.
func WithPhiNormal() Option { return func(o *Options) { o.Flags |= PhiNormal } }

// WithSigmaNormal treats σ as an ordinary symbol.
func WithSigmaNormal() Option { return func(o *Options) { o.Flags |= SigmaNormal } }

// WithSpecialSymbols replaces all four flags at once.
func WithSpecialSymbols(f Flags) Option { return func(o *Options) { o.Flags = f } }

// WithMaxStates caps the number of output states (n ≥ 1).
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: max states must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithDelta sets the residual quantization step (d ≥ 0; 0 means exact).
func WithDelta(d float64) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: delta must be non-negative (%g)", ErrOptionViolation, d)
			return
		}
		o.Delta = d
	}
}

// WithClosureCacheSize sets the epsilon-closure LRU capacity (n ≥ 1).
func WithClosureCacheSize(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: closure cache size must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.ClosureCacheSize = n
	}
}

// WithResultProperties selects the indices stored by the output.
func WithResultProperties(p core.Properties) Option {
	return func(o *Options) { o.ResultProperties = p }
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
