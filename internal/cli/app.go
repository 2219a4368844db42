package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/hgtext"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// app is the state shared by the commands of one invocation.
type app struct {
	opts    *RootOptions
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics
	vocab   *symbol.Vocabulary
}

// setup loads the configuration and builds the logger and metrics.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	if a.opts.LogLevel != "" {
		cfg.Log.Level = a.opts.LogLevel
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.log = cfg.NewLogger(cmd.ErrOrStderr())
	a.metrics = newMetrics()
	a.vocab = symbol.NewVocabulary()

	return nil
}

// body is a command implementation instantiated for one weight type.
type body[F any] func(a *app, f F, cmd *cobra.Command, args []string, out io.Writer) error

// bind picks the instantiation matching --weight and runs it through a.run.
func bind[F any](a *app, name string, f F, viterbi, logw, feature, expectation body[F]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var b body[F]
		switch a.opts.Weight {
		case weightViterbi:
			b = viterbi
		case weightLog:
			b = logw
		case weightFeature:
			b = feature
		case weightExpectation:
			b = expectation
		default:
			return fmt.Errorf("invalid weight %q", a.opts.Weight)
		}

		return a.run(cmd, name, func(out io.Writer) error { return b(a, f, cmd, args, out) })
	}
}

// run executes fn into a buffer and copies it to stdout only on success.
// Metrics are recorded and flushed either way.
func (a *app) run(cmd *cobra.Command, name string, fn func(out io.Writer) error) error {
	start := time.Now()
	var buf bytes.Buffer
	err := fn(&buf)
	a.metrics.observe(name, time.Since(start), err)
	a.log.Debug("hyp: command finished", "command", name, "elapsed", time.Since(start), "error", err)
	if err == nil {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
	}
	if a.opts.MetricsFile != "" {
		if merr := a.metrics.write(a.opts.MetricsFile); merr != nil && err == nil {
			err = merr
		}
	}

	return err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}

	return path
}

// readGraph reads one hypergraph from path, or from stdin for "" and "-".
func readGraph[W weight.Weight[W]](a *app, cmd *cobra.Command, path string) (*core.Hypergraph[W], error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
		a.warnTerminal(r)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	h, err := hgtext.Read[W](r, a.vocab)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}

	return h, nil
}

// singleInput reads the optional positional file argument.
func singleInput[W weight.Weight[W]](a *app, cmd *cobra.Command, name string, args []string) (*core.Hypergraph[W], error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	h, err := readGraph[W](a, cmd, path)
	if err != nil {
		return nil, err
	}
	a.metrics.graph(name, "input", h.NumStates(), h.NumArcs())

	return h, nil
}

// writeGraph renders h to out and records its size.
func writeGraph[W weight.Weight[W]](a *app, name string, h *core.Hypergraph[W], out io.Writer) error {
	a.metrics.graph(name, "output", h.NumStates(), h.NumArcs())

	return hgtext.Write(out, h, a.vocab)
}

// warnTerminal logs a hint when stdin is an interactive terminal.
func (a *app) warnTerminal(r io.Reader) {
	f, ok := r.(*os.File)
	if !ok {
		return
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		a.log.Warn("hyp: reading a hypergraph from the terminal, end input with Ctrl-D")
	}
}

// withConfig returns a copy of the configuration after apply, validated.
func (a *app) withConfig(apply func(c *config.Config)) (*config.Config, error) {
	c := *a.cfg
	apply(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
