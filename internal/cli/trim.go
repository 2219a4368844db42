package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/bfs"
	"github.com/katalvlaran/hyperlath/weight"
)

func newTrimCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trim [file]",
		Short: "Remove states that take part in no derivation",
		Args:  cobra.MaximumNArgs(1),
		RunE: bind(a, "trim", struct{}{},
			runTrim[weight.Viterbi], runTrim[weight.Log], runTrim[weight.Feature], runTrim[weight.Expectation]),
	}
}

func runTrim[W weight.Weight[W]](a *app, _ struct{}, cmd *cobra.Command, args []string, out io.Writer) error {
	h, err := singleInput[W](a, cmd, "trim", args)
	if err != nil {
		return err
	}
	if _, err = bfs.Trim(h, bfs.WithContext(ctxOf(cmd))); err != nil {
		return err
	}

	return writeGraph(a, "trim", h, out)
}
