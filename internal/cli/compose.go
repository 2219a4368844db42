package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hyperlath/compose"
	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

type composeFlags struct {
	right     string
	side      string
	maxStates int
	jobs      int
}

func newComposeCommand(a *app) *cobra.Command {
	f := &composeFlags{}
	cmd := &cobra.Command{
		Use:   "compose --right FSA [left...]",
		Short: "Compose hypergraphs with a right FSA",
		Long: `Compose every left hypergraph with the same right FSA. Left inputs are
processed in parallel and written in argument order; with more than one
left input each result is preceded by a "# <file>" comment line.`,
		RunE: bind(a, "compose", f,
			runCompose[weight.Viterbi], runCompose[weight.Log], runCompose[weight.Feature], runCompose[weight.Expectation]),
	}
	cmd.Flags().StringVar(&f.right, "right", "", "right FSA file (required)")
	cmd.Flags().StringVar(&f.side, "side", "", "left label side matched against the right input (output|input, default from config)")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "output state cap (default from config)")
	cmd.Flags().IntVar(&f.jobs, "jobs", runtime.GOMAXPROCS(0), "maximum number of parallel compositions")
	_ = cmd.MarkFlagRequired("right")

	return cmd
}

func runCompose[W weight.Weight[W]](a *app, f *composeFlags, cmd *cobra.Command, args []string, out io.Writer) error {
	fl := cmd.Flags()
	c, err := a.withConfig(func(c *config.Config) {
		if fl.Changed("side") {
			c.Compose.Side = f.side
		}
		if fl.Changed("max-states") {
			c.Compose.MaxStates = f.maxStates
		}
	})
	if err != nil {
		return err
	}
	if f.jobs < 1 {
		return fmt.Errorf("invalid --jobs %d: must be >= 1", f.jobs)
	}
	right, err := readGraph[W](a, cmd, f.right)
	if err != nil {
		return err
	}
	a.metrics.graph("compose", "right", right.NumStates(), right.NumArcs())

	lefts := args
	if len(lefts) == 0 {
		lefts = []string{"-"}
	}
	opts := c.ComposeOptions(a.log)

	// The right FSA is shared read-only by every worker.
	results := make([]*core.Hypergraph[W], len(lefts))
	g, ctx := errgroup.WithContext(ctxOf(cmd))
	g.SetLimit(f.jobs)
	for i, path := range lefts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			left, err := readGraph[W](a, cmd, path)
			if err != nil {
				return err
			}
			a.metrics.graph("compose", "input", left.NumStates(), left.NumArcs())
			res, err := compose.Compose(left, right, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}
			results[i] = res

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		if len(results) > 1 {
			fmt.Fprintf(out, "# %s\n", displayName(lefts[i]))
		}
		if err = writeGraph(a, "compose", res, out); err != nil {
			return err
		}
	}

	return nil
}
