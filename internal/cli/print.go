package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/weight"
)

type printFlags struct {
	stats bool
}

func newPrintCommand(a *app) *cobra.Command {
	f := &printFlags{}
	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Normalize a hypergraph or print its statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: bind(a, "print", f,
			runPrint[weight.Viterbi], runPrint[weight.Log], runPrint[weight.Feature], runPrint[weight.Expectation]),
	}
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print statistics instead of the hypergraph")

	return cmd
}

func runPrint[W weight.Weight[W]](a *app, f *printFlags, cmd *cobra.Command, args []string, out io.Writer) error {
	h, err := singleInput[W](a, cmd, "print", args)
	if err != nil {
		return err
	}
	if !f.stats {
		return writeGraph(a, "print", h, out)
	}
	st := h.Stats()
	_, err = fmt.Fprintf(out, "states %d\nlexical %d\narcs %d\naxioms %d\nmax-arity %d\nfsa %t\nstart %t\nfinal %t\n",
		st.States, st.LexicalStates, st.Arcs, st.Axioms, st.MaxArity, st.FSA, st.HasStart, st.HasFinal)

	return err
}
