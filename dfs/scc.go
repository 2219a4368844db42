package dfs

import (
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// Components returns the strongly connected components of the head-depends-on-tails
// graph of h in bottom-up order: a component appears after every component
// containing one of its members' tails.
//
// Steps:
//  1. Build head → tails adjacency from the arc arena (arc order).
//  2. Run Tarjan from every unvisited state in ascending id order.
//  3. Tarjan completes a component only after all components it reaches,
//     which is exactly the bottom-up order.
func Components[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) ([]Component, error) {
	if h == nil {
		return nil, ErrGraphNil
	}
	o := resolve(opts)
	deps := make([][]core.StateID, h.NumStates())
	h.ForArcs(func(_ core.ArcID, a core.Arc[W]) bool {
		deps[a.Head] = append(deps[a.Head], a.Tails...)

		return true
	})

	t := newTarjan(deps, o)
	if err := t.run(); err != nil {
		return nil, err
	}

	return t.components, nil
}

// tarjan holds the state of one strongly-connected-components run over an
// adjacency list indexed by StateID.
type tarjan struct {
	adj        [][]core.StateID
	opts       Options
	next       int
	index      []int // -1 = unvisited
	lowlink    []int
	onStack    []bool
	stack      []core.StateID
	components []Component
}

func newTarjan(adj [][]core.StateID, o Options) *tarjan {
	t := &tarjan{
		adj:     adj,
		opts:    o,
		index:   make([]int, len(adj)),
		lowlink: make([]int, len(adj)),
		onStack: make([]bool, len(adj)),
	}
	for i := range t.index {
		t.index[i] = -1
	}

	return t
}

func (t *tarjan) run() error {
	for v := range t.adj {
		if t.index[v] < 0 {
			if err := t.strongConnect(core.StateID(v)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (t *tarjan) strongConnect(v core.StateID) error {
	// 1. Cancellation check at entry
	select {
	case <-t.opts.Ctx.Done():
		return t.opts.Ctx.Err()
	default:
	}
	// 2. Assign discovery index and push
	t.index[v], t.lowlink[v] = t.next, t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	// 3. Explore dependencies
	selfLoop := false
	for _, w := range t.adj[v] {
		switch {
		case w == v:
			selfLoop = true
		case t.index[w] < 0:
			if err := t.strongConnect(w); err != nil {
				return err
			}
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		case t.onStack[w]:
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	// 4. v is a root: pop its component
	if t.lowlink[v] != t.index[v] {
		return nil
	}
	var c Component
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		c.States = append(c.States, w)
		if w == v {
			break
		}
	}
	// Members were popped in reverse discovery order.
	for i, j := 0, len(c.States)-1; i < j; i, j = i+1, j-1 {
		c.States[i], c.States[j] = c.States[j], c.States[i]
	}
	c.Cyclic = len(c.States) > 1 || selfLoop
	t.components = append(t.components, c)

	return nil
}
