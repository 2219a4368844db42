package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/weight"
)

type insideFlags struct {
	outside       bool
	delta         float64
	maxIterations int
}

func newInsideCommand(a *app) *cobra.Command {
	f := &insideFlags{}
	cmd := &cobra.Command{
		Use:   "inside [file]",
		Short: "Print inside (and outside) weights of the structural states",
		Long: `Print one line per structural state: its id, its inside weight and,
with --outside, its outside weight. The last line is the total weight
of the final state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: bind(a, "inside", f,
			runInside[weight.Viterbi], runInside[weight.Log], runInside[weight.Feature], runInside[weight.Expectation]),
	}
	cmd.Flags().BoolVar(&f.outside, "outside", false, "also print outside weights")
	cmd.Flags().Float64Var(&f.delta, "delta", 0, "fixed-point tolerance (default from config)")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "fixed-point sweep cap (default from config)")

	return cmd
}

func runInside[W weight.Weight[W]](a *app, f *insideFlags, cmd *cobra.Command, args []string, out io.Writer) error {
	c, err := a.withConfig(func(c *config.Config) {
		if cmd.Flags().Changed("delta") {
			c.Inside.Delta = f.delta
		}
		if cmd.Flags().Changed("max-iterations") {
			c.Inside.MaxIterations = f.maxIterations
		}
	})
	if err != nil {
		return err
	}
	h, err := singleInput[W](a, cmd, "inside", args)
	if err != nil {
		return err
	}
	opts := c.InsideOptions(a.log)
	in, err := shortest.Inside(h, opts...)
	if err != nil {
		return err
	}
	var outside *shortest.Result[W]
	if f.outside {
		if outside, err = shortest.Outside(h, in, opts...); err != nil {
			return err
		}
	}

	// 1) Header, 2) one row per structural state, 3) total.
	if outside != nil {
		fmt.Fprintln(out, "# state inside outside")
	} else {
		fmt.Fprintln(out, "# state inside")
	}
	for s := core.StateID(0); int(s) < h.NumStates(); s++ {
		if h.IsLexical(s) {
			continue
		}
		if outside != nil {
			fmt.Fprintf(out, "%d %s %s\n", s, in.At(s), outside.At(s))
		} else {
			fmt.Fprintf(out, "%d %s\n", s, in.At(s))
		}
	}
	_, err = fmt.Fprintf(out, "TOTAL %s\n", in.Total())

	return err
}
