package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/weight"
)

type determinizeFlags struct {
	epsilonNormal bool
	rhoNormal     bool
	phiNormal     bool
	sigmaNormal   bool
	maxStates     int
}

func newDeterminizeCommand(a *app) *cobra.Command {
	f := &determinizeFlags{}
	cmd := &cobra.Command{
		Use:   "determinize [file]",
		Short: "Determinize a weighted FSA",
		Long: `Determinize an FSA-shaped hypergraph over a distance weight.
The --*-normal flags make a special symbol an ordinary one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: bind(a, "determinize", f,
			runDeterminize[weight.Viterbi], runDeterminize[weight.Log], runDeterminize[weight.Feature], runDeterminize[weight.Expectation]),
	}
	cmd.Flags().BoolVar(&f.epsilonNormal, "epsilon-normal", false, "treat <eps> as an ordinary symbol")
	cmd.Flags().BoolVar(&f.rhoNormal, "rho-normal", false, "treat <rho> as an ordinary symbol")
	cmd.Flags().BoolVar(&f.phiNormal, "phi-normal", false, "treat <phi> as an ordinary symbol")
	cmd.Flags().BoolVar(&f.sigmaNormal, "sigma-normal", false, "treat <sigma> as an ordinary symbol")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "output state cap (default from config)")

	return cmd
}

func runDeterminize[W weight.Weight[W]](a *app, f *determinizeFlags, cmd *cobra.Command, args []string, out io.Writer) error {
	fl := cmd.Flags()
	c, err := a.withConfig(func(c *config.Config) {
		if fl.Changed("epsilon-normal") {
			c.Determinize.EpsilonNormal = f.epsilonNormal
		}
		if fl.Changed("rho-normal") {
			c.Determinize.RhoNormal = f.rhoNormal
		}
		if fl.Changed("phi-normal") {
			c.Determinize.PhiNormal = f.phiNormal
		}
		if fl.Changed("sigma-normal") {
			c.Determinize.SigmaNormal = f.sigmaNormal
		}
		if fl.Changed("max-states") {
			c.Determinize.MaxStates = f.maxStates
		}
	})
	if err != nil {
		return err
	}
	h, err := singleInput[W](a, cmd, "determinize", args)
	if err != nil {
		return err
	}
	d, err := determinize.Determinize(h, c.DeterminizeOptions(a.log)...)
	if err != nil {
		return err
	}

	return writeGraph(a, "determinize", d, out)
}
