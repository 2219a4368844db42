package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/hyperlath/core"
)

var (
	// ErrGraphNil is returned when a nil hypergraph is passed in.
	ErrGraphNil = errors.New("dfs: hypergraph is nil")

	// ErrCycleDetected indicates that TopologicalSort found a cycle.
	ErrCycleDetected = errors.New("dfs: cycle detected")
)

// Component is one strongly connected component of the dependency graph.
type Component struct {
	// States lists the members in discovery order.
	States []core.StateID
	// Cyclic is true when the component has more than one state or a self-loop.
	Cyclic bool
}

// Option configures a traversal.
type Option func(*Options)

// Options holds traversal settings.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context
}

// DefaultOptions returns Options with a Background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
