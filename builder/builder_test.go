package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/hyperlath/builder"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

var inArcs = []core.Option{core.WithInArcs()}

type BuilderSuite struct {
	suite.Suite
	vocab *symbol.Vocabulary
}

func (s *BuilderSuite) SetupTest() { s.vocab = symbol.NewVocabulary() }

func (s *BuilderSuite) opts(extra ...builder.Option) []builder.Option {
	return append([]builder.Option{builder.WithVocabulary(s.vocab)}, extra...)
}

func (s *BuilderSuite) TestString() {
	h, err := builder.Build[weight.Viterbi](inArcs, s.opts(builder.WithWeightFn(builder.CyclicWeightFn(0.5, 0.25))),
		builder.String[weight.Viterbi]("a", "b", "a"))
	s.Require().NoError(err)

	st := h.Stats()
	s.Equal(4, st.States-st.LexicalStates)
	s.Equal(2, st.LexicalStates, "repeated tokens share one lexical state")
	s.Equal(3, st.Arcs)
	s.True(st.FSA)
	s.Equal(core.StateID(0), h.Start())
	s.Equal(core.StateID(3), h.Final())

	in, err := shortest.Inside(h)
	s.Require().NoError(err)
	s.InDelta(0.5*0.25*0.5, float64(in.Total()), 1e-12)
}

func (s *BuilderSuite) TestStringPairs() {
	h, err := builder.Build[weight.Viterbi](inArcs, s.opts(), builder.String[weight.Viterbi]("a:x"))
	s.Require().NoError(err)

	a, ok := s.vocab.Lookup("a")
	s.Require().True(ok)
	x, ok := s.vocab.Lookup("x")
	s.Require().True(ok)
	l := h.ArcLabel(0)
	s.Equal(a, l.In)
	s.Equal(x, l.Out)
	s.False(l.IsAcceptor())
}

func (s *BuilderSuite) TestSausageCountsPaths() {
	// Log weights of One make inside the log of the path count: 2·3·1 = 6.
	h, err := builder.Build[weight.Log](inArcs, s.opts(),
		builder.Sausage[weight.Log]([][]string{{"a", "b"}, {"a", "b", "c"}, {"d"}}))
	s.Require().NoError(err)
	s.Equal(6, h.NumArcs())

	in, err := shortest.Inside(h)
	s.Require().NoError(err)
	s.InDelta(math.Log(6), float64(in.Total()), 1e-9)
}

func (s *BuilderSuite) TestChartCountsBracketings() {
	// Catalan numbers: C(0..4) = 1, 1, 2, 5, 14.
	catalan := []float64{1, 1, 2, 5, 14}
	tokens := []string{"w", "x", "y", "z", "v"}
	for n := 1; n <= len(tokens); n++ {
		h, err := builder.Build[weight.Log](inArcs, s.opts(), builder.Chart[weight.Log](tokens[:n]...))
		s.Require().NoError(err)
		s.Equal(core.NoState, h.Start())

		in, err := shortest.Inside(h)
		s.Require().NoError(err)
		s.InDelta(math.Log(catalan[n-1]), float64(in.Total()), 1e-9, "n=%d", n)
	}
}

func (s *BuilderSuite) TestChartShape() {
	h, err := builder.Build[weight.Viterbi](inArcs, s.opts(), builder.Chart[weight.Viterbi]("a", "b", "c"))
	s.Require().NoError(err)

	st := h.Stats()
	s.Equal(6+3, st.States, "six spans plus three lexical states")
	s.Equal(3+4, st.Arcs, "three leaves plus 2·1 + 1·2 binary rules")
	s.Equal(2, st.MaxArity)
	s.False(st.FSA)
}

func (s *BuilderSuite) TestRandomDAGDeterministic() {
	build := func(seed int64) *core.Hypergraph[weight.Viterbi] {
		h, err := builder.Build[weight.Viterbi](inArcs,
			s.opts(builder.WithSeed(seed), builder.WithWeightFn(builder.UniformWeightFn(0.1, 0.9))),
			builder.RandomDAG[weight.Viterbi](6, 0.3, "a", "b", "c"))
		s.Require().NoError(err)

		return h
	}
	a, b := build(42), build(42)
	eq, err := core.EqualFSA(a, b, 0)
	s.Require().NoError(err)
	s.True(eq)
	s.GreaterOrEqual(a.NumArcs(), 5, "backbone is always present")
}

func (s *BuilderSuite) TestRandomDAGDeterminizes() {
	h, err := builder.Build[weight.Viterbi](inArcs,
		s.opts(builder.WithSeed(7), builder.WithWeightFn(builder.UniformWeightFn(0.1, 0.9))),
		builder.RandomDAG[weight.Viterbi](5, 0.4, "a", "b"))
	s.Require().NoError(err)

	det, err := determinize.Determinize(h)
	s.Require().NoError(err)
	s.True(determinize.IsDeterministic(det))

	want, err := shortest.Inside(h)
	s.Require().NoError(err)
	got, err := shortest.Inside(core.Indexed(det, core.StoreInArcs))
	s.Require().NoError(err)
	s.InDelta(float64(want.Total()), float64(got.Total()), 1e-4)
}

func (s *BuilderSuite) TestLastMarkersWin() {
	h, err := builder.Build[weight.Viterbi](inArcs, s.opts(),
		builder.String[weight.Viterbi]("a"),
		builder.String[weight.Viterbi]("b", "c"))
	s.Require().NoError(err)
	s.Equal(core.StateID(3), h.Start(), "second string starts after the first one's states and lexical state")
}

func TestBuilderSuite(t *testing.T) { suite.Run(t, new(BuilderSuite)) }

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		cons builder.Constructor[weight.Viterbi]
		opts []builder.Option
		want error
	}{
		{"nil constructor", nil, nil, builder.ErrConstructFailed},
		{"empty string", builder.String[weight.Viterbi](), nil, builder.ErrTooFewStates},
		{"empty slot", builder.Sausage[weight.Viterbi]([][]string{{"a"}, {}}), nil, builder.ErrTooFewStates},
		{"empty chart", builder.Chart[weight.Viterbi](), nil, builder.ErrTooFewStates},
		{"random without rng", builder.RandomDAG[weight.Viterbi](3, 0.5, "a"), nil, builder.ErrNeedRandSource},
		{"random too small", builder.RandomDAG[weight.Viterbi](1, 0.5, "a"), []builder.Option{builder.WithSeed(1)}, builder.ErrTooFewStates},
		{"random no alphabet", builder.RandomDAG[weight.Viterbi](3, 0.5), []builder.Option{builder.WithSeed(1)}, builder.ErrTooFewStates},
		{"random bad p", builder.RandomDAG[weight.Viterbi](3, 1.5, "a"), []builder.Option{builder.WithSeed(1)}, builder.ErrInvalidProbability},
		{"bad weight", builder.String[weight.Viterbi]("a"), []builder.Option{builder.WithWeightFn(builder.ConstantWeightFn(-1))}, weight.ErrParse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := builder.Build[weight.Viterbi](nil, tc.opts, tc.cons)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, h)
		})
	}
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithVocabulary(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithWeightFn(nil) })
	assert.Panics(t, func() { builder.UniformWeightFn(2, 1) })
	assert.Panics(t, func() { builder.CyclicWeightFn() })
}

func TestWeightFns(t *testing.T) {
	assert.Equal(t, 0.3, builder.ConstantWeightFn(0.3)(nil))
	assert.Equal(t, 0.2, builder.UniformWeightFn(0.2, 0.8)(nil))

	cyc := builder.CyclicWeightFn(1, 2)
	assert.Equal(t, []float64{1, 2, 1}, []float64{cyc(nil), cyc(nil), cyc(nil)})
}
