package determinize

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/dfs"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// edge is one classified input transition.
type edge[W weight.Weight[W]] struct {
	dst core.StateID
	w   W
}

// elem is one (state, residual) member of a subset.
type elem[W weight.Weight[W]] struct {
	state core.StateID
	w     W
}

// table holds the out-transitions of one input state grouped by kind.
type table[W weight.Weight[W]] struct {
	explicit map[symbol.Label][]edge[W]
	labels   []symbol.Label // explicit labels, first-seen order
	eps      []edge[W]
	rho      []edge[W]
	phi      []edge[W]
	sigma    []edge[W]
}

// pending is a discovered subset waiting for expansion.
type pending[W weight.Weight[W]] struct {
	set []elem[W]
	id  core.StateID
}

type determinizer[W weight.Weight[W]] struct {
	in       *core.Hypergraph[W]
	opts     Options
	tables   []table[W]
	keep     []bool
	closures *lru.Cache[core.StateID, []elem[W]]

	out      *core.Hypergraph[W]
	ids      map[string]core.StateID
	queue    []pending[W]
	finalKey string
}

// Determinize returns a deterministic FSA equivalent to h.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. W must be distance-like (core.ErrUnsupportedInput).
//  3. h must be non-nil and FSA-shaped (core.ErrNotFsm) with a start state.
//  4. With ε special, the ε transitions must be acyclic (core.ErrUnsupportedInput).
//  5. During expansion, σ remainders with ρ normal and accepting subsets
//     that read a normal ε are rejected (core.ErrUnsupportedInput).
//
// Steps:
//  1. Classify every input transition (explicit, ε, ρ, φ, σ) once.
//  2. Seed the start subset with the ε closure of the start state.
//  3. Expand subsets breadth-first: one arc per explicit symbol, then one ρ
//     arc for the remainder, then the ε arc into the output final state.
//
// The input is never mutated.
func Determinize[W weight.Weight[W]](h *core.Hypergraph[W], opts ...Option) (*core.Hypergraph[W], error) {
	// 1) Validate
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !weight.IsDistance[W]() {
		return nil, fmt.Errorf("%w: determinize requires a distance-like weight", core.ErrUnsupportedInput)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: nil hypergraph", core.ErrInvalidInput)
	}
	if !h.IsFsm() {
		return nil, fmt.Errorf("Determinize: %w", core.ErrNotFsm)
	}
	if h.Start() == core.NoState {
		return nil, fmt.Errorf("%w: determinize requires a start state", core.ErrInvalidInput)
	}
	if !o.Flags.Has(EpsilonNormal) {
		cyclic, err := dfs.EpsilonCycles(h)
		if err != nil {
			return nil, err
		}
		if cyclic {
			return nil, fmt.Errorf("%w: epsilon cycle while epsilon is special", core.ErrUnsupportedInput)
		}
	}

	cache, err := lru.New[core.StateID, []elem[W]](o.ClosureCacheSize)
	if err != nil {
		return nil, fmt.Errorf("determinize: closure cache: %w", err)
	}
	d := &determinizer[W]{
		in:       core.Indexed(h, core.StoreOutArcs),
		opts:     o,
		closures: cache,
		out:      core.New[W](core.WithProperties(o.ResultProperties)),
		ids:      make(map[string]core.StateID),
	}
	d.classify()
	if f := h.Final(); f != core.NoState {
		d.finalKey = d.key([]elem[W]{{state: f, w: weight.One[W]()}})
	}

	// 2) Start subset
	start, err := d.intern(d.closure(h.Start()))
	if err != nil {
		return nil, err
	}
	if err = d.out.SetStart(start); err != nil {
		return nil, err
	}

	// 3) Expand
	for len(d.queue) > 0 {
		p := d.queue[0]
		d.queue = d.queue[1:]
		if err = d.expand(p); err != nil {
			return nil, err
		}
	}
	o.Logger.Debug("determinize: done",
		"inputStates", h.NumStates(), "outputStates", d.out.NumStates(), "outputArcs", d.out.NumArcs())

	return d.out, nil
}

// classify fills tables and keep from the out-arc index.
func (d *determinizer[W]) classify() {
	n := d.in.NumStates()
	d.tables = make([]table[W], n)
	d.keep = make([]bool, n)
	f := d.opts.Flags
	for q := core.StateID(0); int(q) < n; q++ {
		t := &d.tables[q]
		ids, _ := d.in.OutArcs(q)
		for _, id := range ids {
			a := d.in.Arc(id)
			e := edge[W]{dst: a.Head, w: a.Weight}
			l := d.in.ArcLabel(id)
			switch {
			case d.in.IsEpsilonArc(id) && !f.Has(EpsilonNormal):
				t.eps = append(t.eps, e)
				continue
			case d.in.IsEpsilonArc(id):
				l = symbol.Acceptor(symbol.Epsilon)
			case l.In == symbol.Rho && !f.Has(RhoNormal):
				t.rho = append(t.rho, e)
				continue
			case l.In == symbol.Phi && !f.Has(PhiNormal):
				t.phi = append(t.phi, e)
				continue
			case l.In == symbol.Sigma && !f.Has(SigmaNormal):
				t.sigma = append(t.sigma, e)
				continue
			}
			if t.explicit == nil {
				t.explicit = make(map[symbol.Label][]edge[W])
			}
			if _, seen := t.explicit[l]; !seen {
				t.labels = append(t.labels, l)
			}
			t.explicit[l] = append(t.explicit[l], e)
		}
		d.keep[q] = q == d.in.Final() || len(t.labels)+len(t.rho)+len(t.phi)+len(t.sigma) > 0
	}
}

// closure returns the kept states ε-reachable from q with their ⊕ path
// weights, sorted by state. With ε normal it is {q} (when kept).
func (d *determinizer[W]) closure(q core.StateID) []elem[W] {
	if d.opts.Flags.Has(EpsilonNormal) {
		if d.keep[q] {
			return []elem[W]{{state: q, w: weight.One[W]()}}
		}

		return nil
	}
	if c, ok := d.closures.Get(q); ok {
		return c
	}
	acc := make(map[core.StateID]W)
	if d.keep[q] {
		acc[q] = weight.One[W]()
	}
	for _, e := range d.tables[q].eps {
		for _, m := range d.closure(e.dst) {
			accumulate(acc, m.state, e.w.Times(m.w))
		}
	}
	c := sorted(acc)
	d.closures.Add(q, c)

	return c
}

// match returns the transitions q takes on x (NoLabel stands for any symbol
// without an explicit arc). φ is followed only when nothing else matches.
func (d *determinizer[W]) match(q core.StateID, x symbol.Label, depth int) []edge[W] {
	t := &d.tables[q]
	exp := t.explicit[x]
	out := make([]edge[W], 0, len(exp)+len(t.sigma)+len(t.rho))
	out = append(out, exp...)
	out = append(out, t.sigma...)
	if len(exp) == 0 {
		out = append(out, t.rho...)
	}
	if len(out) > 0 || depth >= d.in.NumStates() {
		return out
	}
	for _, f := range t.phi {
		for _, m := range d.closure(f.dst) {
			for _, e := range d.match(m.state, x, depth+1) {
				out = append(out, edge[W]{dst: e.dst, w: f.w.Times(m.w).Times(e.w)})
			}
		}
	}

	return out
}

// symbols lists the explicit labels a subset reacts to, including those
// reachable through φ, sorted by (In, Out).
func (d *determinizer[W]) symbols(set []elem[W]) []symbol.Label {
	seen := make(map[symbol.Label]bool)
	visited := make(map[core.StateID]bool)
	var xs []symbol.Label
	var visit func(q core.StateID)
	visit = func(q core.StateID) {
		if visited[q] {
			return
		}
		visited[q] = true
		t := &d.tables[q]
		for _, l := range t.labels {
			if !seen[l] {
				seen[l] = true
				xs = append(xs, l)
			}
		}
		for _, f := range t.phi {
			for _, m := range d.closure(f.dst) {
				visit(m.state)
			}
		}
	}
	for _, e := range set {
		visit(e.state)
	}
	slices.SortFunc(xs, func(a, b symbol.Label) int {
		if a.In != b.In {
			return int(a.In) - int(b.In)
		}

		return int(a.Out) - int(b.Out)
	})

	return xs
}

// expand emits every out-arc of one output state.
//
// Errors (core.ErrUnsupportedInput):
//   - σ special with ρ normal and a non-empty remainder: the output has no
//     label meaning "any other symbol".
//   - ε normal and the subset both accepts and reads a literal ε: the
//     final ε arc and the ε transition would share a label.
func (d *determinizer[W]) expand(p pending[W]) error {
	eps := symbol.Acceptor(symbol.Epsilon)
	readsEps := false
	for _, x := range d.symbols(p.set) {
		ok, err := d.transition(p, x, x)
		if err != nil {
			return err
		}
		readsEps = readsEps || (ok && x == eps)
	}
	f := d.opts.Flags
	switch {
	case !f.Has(RhoNormal):
		if _, err := d.transition(p, symbol.NoLabel, symbol.Acceptor(symbol.Rho)); err != nil {
			return err
		}
	case !f.Has(SigmaNormal):
		if len(d.successors(p, symbol.NoLabel)) > 0 {
			return fmt.Errorf("%w: sigma remainder needs rho to be special", core.ErrUnsupportedInput)
		}
	}

	// Final residual becomes an ε arc into the output final state.
	final := d.in.Final()
	if final == core.NoState || d.key(p.set) == d.finalKey {
		return nil
	}
	for _, e := range p.set {
		if e.state != final {
			continue
		}
		if readsEps {
			return fmt.Errorf("%w: accepting subset also reads a normal epsilon", core.ErrUnsupportedInput)
		}
		fid, err := d.intern([]elem[W]{{state: final, w: weight.One[W]()}})
		if err != nil {
			return err
		}
		if _, err = d.out.AddArc(fid, []core.StateID{p.id}, e.w); err != nil {
			return err
		}
	}

	return nil
}

// successors merges the ε-closed successors of p on x, sorted by state.
func (d *determinizer[W]) successors(p pending[W], x symbol.Label) []elem[W] {
	acc := make(map[core.StateID]W)
	for _, e := range p.set {
		for _, m := range d.match(e.state, x, 0) {
			for _, c := range d.closure(m.dst) {
				accumulate(acc, c.state, e.w.Times(m.w).Times(c.w))
			}
		}
	}

	return sorted(acc)
}

// transition pushes the common weight of p's successors on x onto an output
// arc labeled outLabel and interns the residual subset. It reports whether
// an arc was emitted.
func (d *determinizer[W]) transition(p pending[W], x, outLabel symbol.Label) (bool, error) {
	set := d.successors(p, x)
	if len(set) == 0 {
		return false, nil
	}
	total := weight.Zero[W]()
	for _, e := range set {
		total = total.Plus(e.w)
	}
	if weight.IsZero(total) {
		return false, nil
	}
	residuals := set[:0]
	for _, e := range set {
		r, err := e.w.Divide(total)
		if err != nil {
			return false, fmt.Errorf("determinize: push weight: %w", err)
		}
		if !weight.IsZero(r) {
			residuals = append(residuals, elem[W]{state: e.state, w: r})
		}
	}
	dst, err := d.intern(residuals)
	if err != nil {
		return false, err
	}
	if _, err = d.out.AddArc(dst, []core.StateID{p.id, d.out.LabelState(outLabel)}, total); err != nil {
		return false, err
	}

	return true, nil
}

// intern returns the output state of set, creating and queueing it if new.
func (d *determinizer[W]) intern(set []elem[W]) (core.StateID, error) {
	k := d.key(set)
	if id, ok := d.ids[k]; ok {
		return id, nil
	}
	if len(d.ids) >= d.opts.MaxStates {
		return core.NoState, &LimitError{Limit: d.opts.MaxStates}
	}
	id := d.out.AddState()
	d.ids[k] = id
	d.queue = append(d.queue, pending[W]{set: set, id: id})
	if d.finalKey != "" && k == d.finalKey {
		if err := d.out.SetFinal(id); err != nil {
			return core.NoState, err
		}
	}

	return id, nil
}

// key is the canonical identity of a sorted subset: states with residual
// values quantized on Delta.
func (d *determinizer[W]) key(set []elem[W]) string {
	b := make([]byte, 0, len(set)*16)
	for _, e := range set {
		b = strconv.AppendInt(b, int64(e.state), 36)
		b = append(b, ':')
		v := e.w.Value()
		if q := v / d.opts.Delta; d.opts.Delta > 0 && math.Abs(q) < 1<<62 {
			b = strconv.AppendInt(b, int64(math.Round(q)), 36)
		} else {
			b = append(b, '#')
			b = strconv.AppendUint(b, math.Float64bits(v), 36)
		}
		b = append(b, ';')
	}

	return string(b)
}

func accumulate[W weight.Weight[W]](acc map[core.StateID]W, s core.StateID, w W) {
	if prev, ok := acc[s]; ok {
		acc[s] = prev.Plus(w)
		return
	}
	acc[s] = w
}

func sorted[W weight.Weight[W]](acc map[core.StateID]W) []elem[W] {
	out := make([]elem[W], 0, len(acc))
	for s, w := range acc {
		out = append(out, elem[W]{state: s, w: w})
	}
	slices.SortFunc(out, func(a, b elem[W]) int { return int(a.state) - int(b.state) })

	return out
}
