package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/prune"
	"github.com/katalvlaran/hyperlath/weight"
)

type bestPathFlags struct {
	search     string
	nbest      int
	derivation bool
}

func newBestPathCommand(a *app) *cobra.Command {
	f := &bestPathFlags{}
	cmd := &cobra.Command{
		Use:   "best-path [file]",
		Short: "Extract the best derivation",
		Long: `Extract the best derivation of the final state. By default the result is
written as a hypergraph holding only the arcs of that derivation; with
--derivation its weight and arc ids (pre-order) are printed instead.
Only 1-best is supported: larger --nbest values are clamped with a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: bind(a, "best-path", f,
			runBestPath[weight.Viterbi], runBestPath[weight.Log], runBestPath[weight.Feature], runBestPath[weight.Expectation]),
	}
	cmd.Flags().StringVar(&f.search, "search", "", "search algorithm (inside|knuth, default from config)")
	cmd.Flags().IntVar(&f.nbest, "nbest", 0, "number of derivations (default from config)")
	cmd.Flags().BoolVar(&f.derivation, "derivation", false, "print the weight and arc ids instead of a hypergraph")

	return cmd
}

func runBestPath[W weight.Weight[W]](a *app, f *bestPathFlags, cmd *cobra.Command, args []string, out io.Writer) error {
	// The nbest flag is passed to prune.NBest unclamped so that it logs its own warning.
	nbest := f.nbest
	c, err := a.withConfig(func(c *config.Config) {
		if cmd.Flags().Changed("search") {
			c.Prune.Search = f.search
		}
		if !cmd.Flags().Changed("nbest") {
			nbest = c.Prune.NBest
		}
	})
	if err != nil {
		return err
	}
	h, err := singleInput[W](a, cmd, "best-path", args)
	if err != nil {
		return err
	}
	opts := c.PruneOptions(a.log)

	if !f.derivation {
		if nbest < 1 {
			return fmt.Errorf("%w: n-best must be positive (%d)", prune.ErrOptionViolation, nbest)
		}
		if nbest > 1 {
			a.log.Warn("hyp: only 1-best extraction is supported, clamping", "requested", nbest)
		}
		best, err := prune.BestPathHypergraph(h, opts...)
		if err != nil {
			return err
		}

		return writeGraph(a, "best-path", best, out)
	}

	ds, err := prune.NBest(h, nbest, opts...)
	if err != nil {
		return err
	}
	for _, d := range ds {
		ids := make([]string, len(d.Arcs))
		for i, id := range d.Arcs {
			ids[i] = fmt.Sprint(id)
		}
		if _, err = fmt.Fprintf(out, "weight %s\narcs %s\n", d.Weight, strings.Join(ids, " ")); err != nil {
			return err
		}
	}

	return nil
}
