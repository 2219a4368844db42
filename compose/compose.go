package compose

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// span is a left state predicted at a right state.
type span struct {
	state core.StateID
	from  core.StateID
}

// triple identifies an output state.
type triple struct {
	state    core.StateID
	from, to core.StateID
}

// completion is a finished triple of some span.
type completion struct {
	to core.StateID
	id core.StateID
}

// dotted is a left arc expanded up to tail pos, currently at right state at.
type dotted[W weight.Weight[W]] struct {
	arc   core.ArcID
	pos   int
	from  core.StateID
	at    core.StateID
	tails []core.StateID
	w     W
}

type composer[W weight.Weight[W]] struct {
	left  *core.Hypergraph[W]
	right *automaton[W]
	opts  Options
	side  symbol.Side
	axiom func(core.StateID) bool

	out         *core.Hypergraph[W]
	ids         map[triple]core.StateID
	predicted   map[span]bool
	completions map[span][]completion
	waiters     map[span][]dotted[W]
	agenda      []dotted[W]
}

// Compose returns the intersection of left with the FSA right.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. Both operands must be non-nil, right FSA-shaped (core.ErrInvalidInput).
//  3. An operand without a final state gives an empty result. An operand
//     with no arcs is not empty by itself: a final axiom or a right
//     start == final still derives or accepts the empty string.
//  4. Right must have a start state (core.ErrInvalidInput).
//
// Steps:
//  1. Predict (left final, right start).
//  2. Drain the agenda: predictions expand in-arcs, terminals consume right
//     transitions, nonterminals wait for completions of their span.
//  3. Connect completed root triples to a fresh final state.
//
// Complexity: O(|L| · |R|^(k+1)) arcs in the worst case for left arity k.
func Compose[W weight.Weight[W]](left, right *core.Hypergraph[W], opts ...Option) (*core.Hypergraph[W], error) {
	// 1) Validate
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: nil operand", core.ErrInvalidInput)
	}
	if !right.IsFsm() {
		return nil, fmt.Errorf("Compose: right: %w", core.ErrNotFsm)
	}
	out := core.New[W](core.WithProperties(o.ResultProperties))
	if left.Final() == core.NoState || right.Final() == core.NoState {
		o.Logger.Debug("compose: operand without final state",
			"leftFinal", left.Final(), "rightFinal", right.Final())
		return out, nil
	}
	if right.Start() == core.NoState {
		return nil, fmt.Errorf("%w: right automaton has no start state", core.ErrInvalidInput)
	}
	ra, err := newAutomaton(right, o.ClosureCacheSize)
	if err != nil {
		return nil, err
	}

	c := &composer[W]{
		left:        core.Indexed(left, core.StoreInArcs),
		right:       ra,
		opts:        o,
		side:        o.Side.side(),
		out:         out,
		ids:         make(map[triple]core.StateID),
		predicted:   make(map[span]bool),
		completions: make(map[span][]completion),
		waiters:     make(map[span][]dotted[W]),
	}
	c.axiom = c.axioms()

	// 2) Agenda
	root := span{state: left.Final(), from: ra.start}
	if err = c.predict(root); err != nil {
		return nil, err
	}
	for len(c.agenda) > 0 {
		d := c.agenda[0]
		c.agenda = c.agenda[1:]
		if err = c.advance(d); err != nil {
			return nil, err
		}
	}

	// 3) Final
	if err = c.finish(root); err != nil {
		return nil, err
	}
	o.Logger.Debug("compose: done",
		"leftStates", left.NumStates(), "rightStates", right.NumStates(),
		"outputStates", out.NumStates(), "outputArcs", out.NumArcs())

	return out, nil
}

// axioms reports the left states whose base weight is One, mirroring
// shortest.Inside: the start state when set, else in-arc-less structural states.
func (c *composer[W]) axioms() func(core.StateID) bool {
	l := c.left
	if s := l.Start(); s != core.NoState {
		return func(q core.StateID) bool { return q == s }
	}

	return func(q core.StateID) bool {
		ids, _ := l.InArcs(q)
		return !l.IsLexical(q) && len(ids) == 0
	}
}

// predict schedules every in-arc of sp.state at sp.from, once per span.
func (c *composer[W]) predict(sp span) error {
	if c.predicted[sp] {
		return nil
	}
	c.predicted[sp] = true
	if c.axiom(sp.state) {
		if err := c.completeAxiom(sp); err != nil {
			return err
		}
	}
	ids, _ := c.left.InArcs(sp.state)
	for _, id := range ids {
		c.agenda = append(c.agenda, dotted[W]{arc: id, from: sp.from, at: sp.from, w: weight.One[W]()})
	}

	return nil
}

// completeAxiom registers the empty derivation of an axiom span. The left
// start at the right start becomes the output start; other axiom triples
// get a zero-tail arc so they keep weight One under any start marking.
func (c *composer[W]) completeAxiom(sp span) error {
	id, isNew, err := c.state(triple{state: sp.state, from: sp.from, to: sp.from})
	if err != nil {
		return err
	}
	if sp.state == c.left.Start() && sp.from == c.right.start {
		if err = c.out.SetStart(id); err != nil {
			return err
		}
	} else if c.left.Start() != core.NoState {
		if _, err = c.out.AddArc(id, nil, weight.One[W]()); err != nil {
			return err
		}
	}
	if isNew {
		c.complete(sp, completion{to: sp.from, id: id})
	}

	return nil
}

// advance processes the next tail of d, or completes it.
func (c *composer[W]) advance(d dotted[W]) error {
	a := c.left.Arc(d.arc)
	if d.pos == len(a.Tails) {
		return c.finishArc(d, a)
	}
	t := a.Tails[d.pos]

	// 1) Terminal
	if c.left.IsLexical(t) {
		l := c.left.Label(t)
		x := l.Side(c.side)
		if symbol.IsEpsilonLike(x) {
			c.push(d, d.at, weight.One[W](), c.out.LabelState(symbol.Pair(l.In, symbol.Epsilon)))
			return nil
		}
		for _, s := range c.right.consume(d.at, x) {
			c.push(d, s.dst, s.w, c.out.LabelState(symbol.Pair(l.In, s.out)))
		}

		return nil
	}

	// 2) Nonterminal: wait on its span, reuse finished completions.
	sp := span{state: t, from: d.at}
	c.waiters[sp] = append(c.waiters[sp], d)
	for _, done := range c.completions[sp] {
		c.push(d, done.to, weight.One[W](), done.id)
	}

	return c.predict(sp)
}

// push queues d advanced by one tail.
func (c *composer[W]) push(d dotted[W], at core.StateID, w W, tail core.StateID) {
	tails := make([]core.StateID, len(d.tails), len(d.tails)+1)
	copy(tails, d.tails)
	c.agenda = append(c.agenda, dotted[W]{
		arc:   d.arc,
		pos:   d.pos + 1,
		from:  d.from,
		at:    at,
		tails: append(tails, tail),
		w:     d.w.Times(w),
	})
}

// finishArc emits the output arc of a fully expanded left arc.
func (c *composer[W]) finishArc(d dotted[W], a core.Arc[W]) error {
	id, isNew, err := c.state(triple{state: a.Head, from: d.from, to: d.at})
	if err != nil {
		return err
	}
	if _, err = c.out.AddArc(id, d.tails, a.Weight.Times(d.w)); err != nil {
		return err
	}
	if isNew {
		c.complete(span{state: a.Head, from: d.from}, completion{to: d.at, id: id})
	}

	return nil
}

// complete records done and resumes every waiter of sp with it.
func (c *composer[W]) complete(sp span, done completion) {
	c.completions[sp] = append(c.completions[sp], done)
	for _, d := range c.waiters[sp] {
		c.push(d, done.to, weight.One[W](), done.id)
	}
}

// state returns the output state of tr, creating it if new.
func (c *composer[W]) state(tr triple) (core.StateID, bool, error) {
	if id, ok := c.ids[tr]; ok {
		return id, false, nil
	}
	if len(c.ids) >= c.opts.MaxStates {
		return core.NoState, false, &LimitError{Limit: c.opts.MaxStates}
	}
	id := c.out.AddState()
	c.ids[tr] = id

	return id, true, nil
}

// finish adds the output final state and one ε arc per accepting root triple.
func (c *composer[W]) finish(root span) error {
	if c.right.final == core.NoState {
		return nil
	}
	final := core.NoState
	for _, done := range c.completions[root] {
		w, ok := c.right.distance(done.to)
		if !ok || weight.IsZero(w) {
			continue
		}
		if final == core.NoState {
			final = c.out.AddState()
			if err := c.out.SetFinal(final); err != nil {
				return err
			}
		}
		if _, err := c.out.AddArc(final, []core.StateID{done.id}, w); err != nil {
			return err
		}
	}

	return nil
}
