package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/hgtext"
	"github.com/katalvlaran/hyperlath/internal/cli"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// execute runs hyp with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func fixture(name string) string { return filepath.Join("testdata", name) }

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}

// insideTotal parses text and returns the total Viterbi weight.
func insideTotal(t *testing.T, text string) (weight.Viterbi, bool) {
	t.Helper()
	h, err := hgtext.Read[weight.Viterbi](strings.NewReader(text), symbol.NewVocabulary())
	require.NoError(t, err)
	in, err := shortest.Inside(h)
	require.NoError(t, err)

	return in.Total(), determinize.IsDeterministic(h)
}

func TestCommandPresence(t *testing.T) {
	cmd := cli.NewRootCommand()
	for _, name := range []string{"print", "trim", "inside", "best-path", "prune", "determinize", "compose"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := cli.NewRootCommand()
	w := cmd.PersistentFlags().Lookup("weight")
	require.NotNil(t, w)
	assert.Equal(t, "viterbi", w.DefValue)
	for _, name := range []string{"config", "log-level", "metrics-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestGoldenOutputs(t *testing.T) {
	cases := []struct {
		golden string
		args   []string
	}{
		{"print", []string{"print", fixture("twoway.hg")}},
		{"stats", []string{"print", "--stats", fixture("twoway.hg")}},
		{"trim", []string{"trim", fixture("trim.hg")}},
		{"inside", []string{"inside", fixture("twoway.hg")}},
		{"inside_outside", []string{"inside", "--outside", fixture("twoway.hg")}},
		{"best_path", []string{"best-path", fixture("twoway.hg")}},
		{"best_path", []string{"best-path", "--search", "knuth", fixture("twoway.hg")}},
		{"derivation", []string{"best-path", "--derivation", fixture("twoway.hg")}},
		{"prune", []string{"prune", "--margin", "0", fixture("twoway.hg")}},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, "_"), func(t *testing.T) {
			out, _, err := execute(t, "", tc.args...)
			require.NoError(t, err)
			assertGolden(t, tc.golden, out)
		})
	}
}

func TestStdin(t *testing.T) {
	in, err := os.ReadFile(fixture("twoway.hg"))
	require.NoError(t, err)
	out, _, err := execute(t, string(in), "print", "-")
	require.NoError(t, err)
	assertGolden(t, "print", out)
}

func TestPruneWideMarginKeepsBoth(t *testing.T) {
	out, _, err := execute(t, "", "prune", "--margin", "5", fixture("twoway.hg"))
	require.NoError(t, err)
	assert.Contains(t, out, "0 3(b) 2 0.4")
}

func TestDeterminize(t *testing.T) {
	out, _, err := execute(t, "", "determinize", fixture("eps.hg"))
	require.NoError(t, err)
	total, det := insideTotal(t, out)
	assert.True(t, det)
	assert.InDelta(t, 0.7, float64(total), 1e-12)
}

func TestCompose(t *testing.T) {
	out, _, err := execute(t, "", "compose", "--right", fixture("right.hg"), fixture("left.hg"))
	require.NoError(t, err)
	total, _ := insideTotal(t, out)
	assert.InDelta(t, 0.25, float64(total), 1e-12)

	// Several lefts are composed in parallel and written in argument order.
	out, _, err = execute(t, "", "compose", "--jobs", "2", "--right", fixture("right.hg"),
		fixture("left.hg"), fixture("twoway.hg"))
	require.NoError(t, err)
	first := strings.Index(out, "# "+fixture("left.hg"))
	second := strings.Index(out, "# "+fixture("twoway.hg"))
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	total, _ = insideTotal(t, out[first:second])
	assert.InDelta(t, 0.25, float64(total), 1e-12)
}

func TestNBestClampWarns(t *testing.T) {
	out, errOut, err := execute(t, "", "best-path", "--derivation", "--nbest", "3", fixture("twoway.hg"))
	require.NoError(t, err)
	assertGolden(t, "derivation", out)
	assert.Contains(t, errOut, "clamping")
	assert.Contains(t, errOut, "requested=3")
}

func TestLogWeights(t *testing.T) {
	out, _, err := execute(t, "", "--weight", "log", "inside", fixture("left.hg"))
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL 2\n")
}

func TestErrorsWriteNothing(t *testing.T) {
	cases := [][]string{
		{"--weight", "tropical", "print", fixture("twoway.hg")},
		{"print", fixture("missing.hg")},
		{"prune", "--margin", "-1", fixture("twoway.hg")},
		{"determinize", "--max-states", "0", fixture("eps.hg")},
		{"--weight", "feature", "determinize", fixture("eps.hg")},
		{"compose", fixture("left.hg")},
		{"compose", "--side", "both", "--right", fixture("right.hg"), fixture("left.hg")},
		{"--log-level", "loud", "print", fixture("twoway.hg")},
		{"best-path", "--nbest", "0", fixture("twoway.hg")},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			out, _, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestSyntaxErrorNamesFile(t *testing.T) {
	_, _, err := execute(t, "0 1 x\n", "print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<stdin>")
	var se *hgtext.SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hyp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prune:\n  margin: 5\nlog:\n  level: debug\n"), 0o600))

	out, errOut, err := execute(t, "", "--config", path, "prune", fixture("twoway.hg"))
	require.NoError(t, err)
	assert.Contains(t, out, "0 3(b) 2 0.4")
	assert.Contains(t, errOut, "command finished")
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyp.prom")
	_, _, err := execute(t, "", "--metrics-file", path, "trim", fixture("trim.hg"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `hyperlath_hyp_runs_total{command="trim",status="ok"} 1`)
	assert.Contains(t, text, `hyperlath_hyp_states{command="trim",role="output"} 5`)
	assert.Contains(t, text, `hyperlath_hyp_arcs{command="trim",role="input"} 4`)
}
