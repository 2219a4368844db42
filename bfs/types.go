// Package bfs provides tunable options and error definitions
// for accessibility over a core.Hypergraph.
package bfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/hyperlath/core"
)

// Sentinel errors for traversal execution.
var (
	// ErrGraphNil is returned if a nil hypergraph pointer is passed.
	ErrGraphNil = errors.New("bfs: hypergraph is nil")
)

// Option configures traversal behavior via functional arguments.
type Option func(*Options)

// Options holds parameters and callbacks to customize a traversal.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when a state is reached. If it returns an error,
	// the traversal aborts and propagates that error.
	OnVisit func(s core.StateID, depth int) error
}

// DefaultOptions returns Options with a Background context and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(core.StateID, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the traversal.
func WithOnVisit(fn func(s core.StateID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a traversal:
//   - Order: states in the sequence they were reached.
//   - Reached: Reached[s] reports whether s was reached.
//   - Depth: level of each reached state (-1 otherwise).
type Result struct {
	Order   []core.StateID
	Reached []bool
	Depth   []int
}

func newResult(n int) *Result {
	r := &Result{
		Order:   make([]core.StateID, 0, n),
		Reached: make([]bool, n),
		Depth:   make([]int, n),
	}
	for i := range r.Depth {
		r.Depth[i] = -1
	}

	return r
}
