package compose

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/dfs"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// step is one right transition: destination, weight and emitted output symbol.
type step[W weight.Weight[W]] struct {
	dst core.StateID
	w   W
	out symbol.ID
}

// reach is one member of an ε closure.
type reach[W weight.Weight[W]] struct {
	state core.StateID
	w     W
}

// rstate groups the out-transitions of one right state by input kind.
type rstate[W weight.Weight[W]] struct {
	explicit map[symbol.ID][]step[W]
	eps      []step[W]
	rho      []step[W]
	phi      []step[W]
	sigma    []step[W]
}

// automaton is the read-only, pre-classified view of the right operand.
type automaton[W weight.Weight[W]] struct {
	states   []rstate[W]
	start    core.StateID
	final    core.StateID
	closures *lru.Cache[core.StateID, []reach[W]]
}

// newAutomaton classifies every transition of the FSA r once.
// Returns core.ErrUnsupportedInput for ε cycles or ε-input arcs with output.
func newAutomaton[W weight.Weight[W]](r *core.Hypergraph[W], cacheSize int) (*automaton[W], error) {
	cyclic, err := dfs.EpsilonCycles(r)
	if err != nil {
		return nil, err
	}
	if cyclic {
		return nil, fmt.Errorf("%w: epsilon cycle in right automaton", core.ErrUnsupportedInput)
	}
	cache, err := lru.New[core.StateID, []reach[W]](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("compose: closure cache: %w", err)
	}

	a := &automaton[W]{
		states:   make([]rstate[W], r.NumStates()),
		start:    r.Start(),
		final:    r.Final(),
		closures: cache,
	}
	var bad error
	r.ForArcs(func(id core.ArcID, arc core.Arc[W]) bool {
		st := &a.states[arc.Tails[0]]
		if r.IsEpsilonArc(id) {
			st.eps = append(st.eps, step[W]{dst: arc.Head, w: arc.Weight, out: symbol.Epsilon})
			return true
		}
		l := r.ArcLabel(id)
		s := step[W]{dst: arc.Head, w: arc.Weight, out: l.Out}
		switch l.In {
		case symbol.Epsilon, symbol.NoSymbol:
			bad = fmt.Errorf("%w: right arc %d has epsilon input and output %d", core.ErrUnsupportedInput, id, l.Out)
			return false
		case symbol.Rho:
			st.rho = append(st.rho, s)
		case symbol.Phi:
			st.phi = append(st.phi, s)
		case symbol.Sigma:
			st.sigma = append(st.sigma, s)
		default:
			if st.explicit == nil {
				st.explicit = make(map[symbol.ID][]step[W])
			}
			st.explicit[l.In] = append(st.explicit[l.In], s)
		}

		return true
	})
	if bad != nil {
		return nil, bad
	}

	return a, nil
}

// closure returns the states ε-reachable from q (q itself with One first)
// with their ⊕ path weights, in discovery order.
func (a *automaton[W]) closure(q core.StateID) []reach[W] {
	if c, ok := a.closures.Get(q); ok {
		return c
	}
	idx := map[core.StateID]int{q: 0}
	c := []reach[W]{{state: q, w: weight.One[W]()}}
	for _, e := range a.states[q].eps {
		for _, m := range a.closure(e.dst) {
			w := e.w.Times(m.w)
			if i, ok := idx[m.state]; ok {
				c[i].w = c[i].w.Plus(w)
				continue
			}
			idx[m.state] = len(c)
			c = append(c, reach[W]{state: m.state, w: w})
		}
	}
	a.closures.Add(q, c)

	return c
}

// distance returns the ε distance from q to the right final state.
func (a *automaton[W]) distance(q core.StateID) (W, bool) {
	for _, m := range a.closure(q) {
		if m.state == a.final {
			return m.w, true
		}
	}

	return weight.Zero[W](), false
}

// consume returns every way of reading x from q: ε moves, then one
// transition on x, with φ backoff at states that cannot read x.
func (a *automaton[W]) consume(q core.StateID, x symbol.ID) []step[W] {
	var out []step[W]
	for _, m := range a.closure(q) {
		for _, s := range a.read(m.state, x, 0) {
			out = append(out, step[W]{dst: s.dst, w: m.w.Times(s.w), out: s.out})
		}
	}

	return out
}

// read matches x at q without leading ε moves.
func (a *automaton[W]) read(q core.StateID, x symbol.ID, depth int) []step[W] {
	st := &a.states[q]
	exp := st.explicit[x]
	out := make([]step[W], 0, len(exp)+len(st.sigma)+len(st.rho))
	out = append(out, exp...)
	out = appendSpecial(out, st.sigma, symbol.Sigma, x)
	if len(exp) == 0 {
		out = appendSpecial(out, st.rho, symbol.Rho, x)
	}
	if len(out) > 0 || depth >= len(a.states) {
		return out
	}
	for _, f := range st.phi {
		for _, m := range a.closure(f.dst) {
			for _, s := range a.read(m.state, x, depth+1) {
				out = append(out, step[W]{dst: s.dst, w: f.w.Times(m.w).Times(s.w), out: s.out})
			}
		}
	}

	return out
}

// appendSpecial adds σ/ρ steps, replacing a repeated special output by x.
func appendSpecial[W weight.Weight[W]](out, steps []step[W], special, x symbol.ID) []step[W] {
	for _, s := range steps {
		if s.out == special {
			s.out = x
		}
		out = append(out, s)
	}

	return out
}
