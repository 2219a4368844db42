package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/prune"
	"github.com/katalvlaran/hyperlath/weight"
)

type pruneFlags struct {
	margin float64
}

func newPruneCommand(a *app) *cobra.Command {
	f := &pruneFlags{}
	cmd := &cobra.Command{
		Use:   "prune [file]",
		Short: "Beam-prune arcs whose posterior is too far from the best derivation",
		Args:  cobra.MaximumNArgs(1),
		RunE: bind(a, "prune", f,
			runPrune[weight.Viterbi], runPrune[weight.Log], runPrune[weight.Feature], runPrune[weight.Expectation]),
	}
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "beam width in nats (default from config)")

	return cmd
}

func runPrune[W weight.Weight[W]](a *app, f *pruneFlags, cmd *cobra.Command, args []string, out io.Writer) error {
	c, err := a.withConfig(func(c *config.Config) {
		if cmd.Flags().Changed("margin") {
			c.Prune.Margin = f.margin
		}
	})
	if err != nil {
		return err
	}
	h, err := singleInput[W](a, cmd, "prune", args)
	if err != nil {
		return err
	}
	if _, err = prune.BeamInPlace(h, c.Prune.Margin, c.PruneOptions(a.log)...); err != nil {
		return err
	}

	return writeGraph(a, "prune", h, out)
}
