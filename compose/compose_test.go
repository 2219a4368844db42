package compose_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hyperlath/compose"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

const (
	symA = symbol.FirstUser + iota
	symB
	symC
)

type vit = core.Hypergraph[weight.Viterbi]

// chain builds the acceptor of one string with one weight per symbol.
// An epsilon symbol gives an arc without a lexical tail.
func chain(t *testing.T, syms []symbol.ID, ws []weight.Viterbi) *vit {
	t.Helper()
	h := core.New[weight.Viterbi]()
	prev := h.AddState()
	require.NoError(t, h.SetStart(prev))
	for i, x := range syms {
		next := h.AddState()
		tails := []core.StateID{prev}
		if x != symbol.Epsilon {
			tails = append(tails, h.LabelState(symbol.Acceptor(x)))
		}
		_, err := h.AddArc(next, tails, ws[i])
		require.NoError(t, err)
		prev = next
	}
	require.NoError(t, h.SetFinal(prev))

	return h
}

// fsaArc adds src --l/w--> dst.
func fsaArc(t *testing.T, h *vit, src, dst core.StateID, l symbol.Label, w weight.Viterbi) {
	t.Helper()
	_, err := h.AddArc(dst, []core.StateID{src, h.LabelState(l)}, w)
	require.NoError(t, err)
}

func total(t *testing.T, h *vit) weight.Viterbi {
	t.Helper()
	in, err := shortest.Inside(h)
	require.NoError(t, err)

	return in.Total()
}

// labels lists the labels of the lexical tails of h in arc order.
func labels(h *vit) []symbol.Label {
	var out []symbol.Label
	for id := core.ArcID(0); int(id) < h.NumArcs(); id++ {
		for _, t := range h.Arc(id).Tails {
			if h.IsLexical(t) {
				out = append(out, h.Label(t))
			}
		}
	}

	return out
}

// ComposeSuite covers FSA∘FSA, grammar∘FSA and the special right symbols.
type ComposeSuite struct {
	suite.Suite
}

func TestComposeSuite(t *testing.T) {
	suite.Run(t, new(ComposeSuite))
}

// TestStringTimesString multiplies the weights of the shared string.
func (s *ComposeSuite) TestStringTimesString() {
	left := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 1})
	right := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 2})

	out, err := compose.Compose(left, right)
	require.NoError(s.T(), err)
	require.True(s.T(), out.IsFsm())
	require.NotEqual(s.T(), core.NoState, out.Start())
	require.NotEqual(s.T(), core.NoState, out.Final())
	require.Equal(s.T(), weight.Viterbi(2), total(s.T(), out))
	require.Equal(s.T(), []symbol.Label{symbol.Acceptor(symA), symbol.Acceptor(symB)}, labels(out))

	// Inputs are untouched.
	require.False(s.T(), left.HasInArcs())
	require.Equal(s.T(), 2, left.NumArcs())
}

// TestMismatch keeps no accepting path.
func (s *ComposeSuite) TestMismatch() {
	left := chain(s.T(), []symbol.ID{symA, symC}, []weight.Viterbi{1, 1})
	right := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 1})

	out, err := compose.Compose(left, right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), core.NoState, out.Final())
	require.True(s.T(), out.IsEmpty())
}

// TestGrammar intersects S → A B, A → a, B → b with the string "a b".
func (s *ComposeSuite) TestGrammar() {
	g := core.New[weight.Viterbi]()
	sS, sA, sB := g.AddState(), g.AddState(), g.AddState()
	a := g.LabelState(symbol.Acceptor(symA))
	b := g.LabelState(symbol.Acceptor(symB))
	_, _ = g.AddArc(sS, []core.StateID{sA, sB}, 0.5)
	_, _ = g.AddArc(sA, []core.StateID{a}, 1)
	_, _ = g.AddArc(sB, []core.StateID{b}, 0.5)
	_, _ = g.AddArc(sB, []core.StateID{a}, 1)
	require.NoError(s.T(), g.SetFinal(sS))

	right := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{0.5, 0.5})
	out, err := compose.Compose(g, right)
	require.NoError(s.T(), err)
	require.False(s.T(), out.IsFsm())
	// 0.5 (S) · 0.5 (B→b) · 0.5 · 0.5 (right)
	require.Equal(s.T(), weight.Viterbi(0.0625), total(s.T(), out))

	// "a a" is derivable by the grammar but not accepted by the right side.
	aa := chain(s.T(), []symbol.ID{symA, symA}, []weight.Viterbi{1, 1})
	out, err = compose.Compose(g, aa)
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(0.5), total(s.T(), out))
}

// TestRightEpsilon follows right ε before terminals and at the end.
func (s *ComposeSuite) TestRightEpsilon() {
	left := chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1})
	right := chain(s.T(), []symbol.ID{symbol.Epsilon, symA, symbol.Epsilon}, []weight.Viterbi{0.5, 1, 0.25})

	out, err := compose.Compose(left, right)
	require.NoError(s.T(), err)
	require.True(s.T(), out.IsFsm())
	require.Equal(s.T(), weight.Viterbi(0.125), total(s.T(), out))
}

// TestLeftEpsilon does not consume on the right.
func (s *ComposeSuite) TestLeftEpsilon() {
	left := chain(s.T(), []symbol.ID{symA, symbol.Epsilon, symB}, []weight.Viterbi{1, 0.5, 1})
	right := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 1})

	out, err := compose.Compose(left, right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(0.5), total(s.T(), out))
}

// TestSigma matches any terminal and outputs it.
func (s *ComposeSuite) TestSigma() {
	right := core.New[weight.Viterbi]()
	q := right.AddState()
	fsaArc(s.T(), right, q, q, symbol.Acceptor(symbol.Sigma), 0.5)
	_ = right.SetStart(q)
	_ = right.SetFinal(q)

	left := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 1})
	out, err := compose.Compose(left, right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(0.25), total(s.T(), out))
	require.Equal(s.T(), []symbol.Label{symbol.Acceptor(symA), symbol.Acceptor(symB)}, labels(out))
}

// TestRho fires only without an explicit arc.
func (s *ComposeSuite) TestRho() {
	right := core.New[weight.Viterbi]()
	q0, q1 := right.AddState(), right.AddState()
	fsaArc(s.T(), right, q0, q1, symbol.Acceptor(symA), 1)
	fsaArc(s.T(), right, q0, q1, symbol.Acceptor(symbol.Rho), 0.5)
	_ = right.SetStart(q0)
	_ = right.SetFinal(q1)

	cases := []struct {
		name string
		sym  symbol.ID
		want weight.Viterbi
	}{
		{"explicit", symA, 1},
		{"other", symC, 0.5},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			out, err := compose.Compose(chain(s.T(), []symbol.ID{tc.sym}, []weight.Viterbi{1}), right)
			require.NoError(s.T(), err)
			require.Equal(s.T(), tc.want, total(s.T(), out))
		})
	}
}

// TestPhi backs off only when nothing matches.
func (s *ComposeSuite) TestPhi() {
	right := core.New[weight.Viterbi]()
	q0, q1, q2 := right.AddState(), right.AddState(), right.AddState()
	fsaArc(s.T(), right, q0, q1, symbol.Acceptor(symA), 0.5)
	fsaArc(s.T(), right, q0, q2, symbol.Acceptor(symbol.Phi), 0.5)
	fsaArc(s.T(), right, q2, q1, symbol.Acceptor(symB), 0.5)
	fsaArc(s.T(), right, q2, q1, symbol.Acceptor(symA), 0.125)
	_ = right.SetStart(q0)
	_ = right.SetFinal(q1)

	out, err := compose.Compose(chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1}), right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(0.5), total(s.T(), out))

	out, err = compose.Compose(chain(s.T(), []symbol.ID{symB}, []weight.Viterbi{1}), right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(0.25), total(s.T(), out))
}

// TestLabelSide matches the selected left projection.
func (s *ComposeSuite) TestLabelSide() {
	left := core.New[weight.Viterbi]()
	p0, p1 := left.AddState(), left.AddState()
	fsaArc(s.T(), left, p0, p1, symbol.Pair(symA, symB), 1)
	_ = left.SetStart(p0)
	_ = left.SetFinal(p1)
	right := chain(s.T(), []symbol.ID{symB}, []weight.Viterbi{0.5})

	out, err := compose.Compose(left, right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(0.5), total(s.T(), out))
	require.Equal(s.T(), []symbol.Label{symbol.Pair(symA, symB)}, labels(out))

	out, err = compose.Compose(left, right, compose.WithLabelSide(compose.LeftInput))
	require.NoError(s.T(), err)
	require.Equal(s.T(), core.NoState, out.Final())
}

// TestEmptyOperands returns a well-formed empty result.
func (s *ComposeSuite) TestEmptyOperands() {
	left := chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1})

	out, err := compose.Compose(left, core.New[weight.Viterbi]())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, out.NumStates())
	require.True(s.T(), out.IsEmpty())

	out, err = compose.Compose(core.New[weight.Viterbi](), left)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, out.NumArcs())
}

// TestEmptyStringWithoutArcs composes operands that have no arcs but still
// derive or accept the empty string.
func (s *ComposeSuite) TestEmptyStringWithoutArcs() {
	only := func() *vit {
		h := core.New[weight.Viterbi]()
		q := h.AddState()
		require.NoError(s.T(), h.SetStart(q))
		require.NoError(s.T(), h.SetFinal(q))

		return h
	}

	// Left ε path with weight 0.5 against a right that accepts only ε.
	left := chain(s.T(), []symbol.ID{symbol.Epsilon}, []weight.Viterbi{0.5})
	out, err := compose.Compose(left, only())
	require.NoError(s.T(), err)
	require.False(s.T(), out.IsEmpty())
	require.Equal(s.T(), weight.Viterbi(0.5), total(s.T(), out))

	// Both sides without arcs.
	out, err = compose.Compose(only(), only())
	require.NoError(s.T(), err)
	require.Equal(s.T(), weight.Viterbi(1), total(s.T(), out))

	// A left that needs a symbol is rejected by the ε-only right.
	out, err = compose.Compose(chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1}), only())
	require.NoError(s.T(), err)
	require.Equal(s.T(), core.NoState, out.Final())
}

// TestErrors covers invalid operands and options.
func (s *ComposeSuite) TestErrors() {
	left := chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1})

	_, err := compose.Compose(nil, left)
	require.ErrorIs(s.T(), err, core.ErrInvalidInput)

	g := core.New[weight.Viterbi]()
	x, y, z := g.AddState(), g.AddState(), g.AddState()
	_, _ = g.AddArc(z, []core.StateID{x, y}, 1)
	_ = g.SetStart(x)
	_ = g.SetFinal(z)
	_, err = compose.Compose(left, g)
	require.ErrorIs(s.T(), err, core.ErrNotFsm)
	require.ErrorIs(s.T(), err, core.ErrInvalidInput)

	noStart := chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1})
	_ = noStart.SetStart(core.NoState)
	_, err = compose.Compose(left, noStart)
	require.ErrorIs(s.T(), err, core.ErrInvalidInput)

	cyc := chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1})
	_, _ = cyc.AddArc(0, []core.StateID{0}, 0.5)
	_, err = compose.Compose(left, cyc)
	require.ErrorIs(s.T(), err, core.ErrUnsupportedInput)

	ins := core.New[weight.Viterbi]()
	r0, r1 := ins.AddState(), ins.AddState()
	fsaArc(s.T(), ins, r0, r1, symbol.Pair(symbol.Epsilon, symA), 1)
	_ = ins.SetStart(r0)
	_ = ins.SetFinal(r1)
	_, err = compose.Compose(left, ins)
	require.ErrorIs(s.T(), err, core.ErrUnsupportedInput)

	_, err = compose.Compose(left, left, compose.WithMaxStates(0))
	require.ErrorIs(s.T(), err, compose.ErrOptionViolation)
	_, err = compose.Compose(left, left, compose.WithLabelSide(compose.LabelSide(7)))
	require.ErrorIs(s.T(), err, compose.ErrOptionViolation)
}

// TestLimit aborts once the output grows past the cap.
func (s *ComposeSuite) TestLimit() {
	left := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 1})
	_, err := compose.Compose(left, left, compose.WithMaxStates(2))
	var le *compose.LimitError
	require.ErrorAs(s.T(), err, &le)
	require.ErrorIs(s.T(), err, compose.ErrLimitExceeded)
	require.Equal(s.T(), 2, le.Limit)
}

// TestResultIndices stores only the requested indices.
func (s *ComposeSuite) TestResultIndices() {
	left := chain(s.T(), []symbol.ID{symA}, []weight.Viterbi{1})

	out, err := compose.Compose(left, left, compose.WithOutArcs())
	require.NoError(s.T(), err)
	require.True(s.T(), out.HasOutArcs())
	require.False(s.T(), out.HasInArcs())

	out, err = compose.Compose(left, left)
	require.NoError(s.T(), err)
	require.True(s.T(), out.HasOutArcs())
	require.True(s.T(), out.HasInArcs())
}

// TestSharedRight composes several left inputs against one FSA concurrently.
func (s *ComposeSuite) TestSharedRight() {
	right := chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{0.5, 0.5})
	lefts := []*vit{
		chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{1, 1}),
		chain(s.T(), []symbol.ID{symA, symB}, []weight.Viterbi{0.5, 1}),
		chain(s.T(), []symbol.ID{symB, symA}, []weight.Viterbi{1, 1}),
	}
	outs := make([]*vit, len(lefts))
	var g errgroup.Group
	for i := range lefts {
		g.Go(func() error {
			out, err := compose.Compose(lefts[i], right)
			outs[i] = out

			return err
		})
	}
	require.NoError(s.T(), g.Wait())
	require.Equal(s.T(), weight.Viterbi(0.25), total(s.T(), outs[0]))
	require.Equal(s.T(), weight.Viterbi(0.125), total(s.T(), outs[1]))
	require.True(s.T(), outs[2].IsEmpty())
}
