package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// Weight names accepted by --weight.
const (
	weightViterbi     = "viterbi"
	weightLog         = "log"
	weightFeature     = "feature"
	weightExpectation = "expectation"
)

// ValidWeights lists the accepted --weight values.
var ValidWeights = []string{weightViterbi, weightLog, weightFeature, weightExpectation}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath  string
	LogLevel    string // overrides log.level when set
	Weight      string
	MetricsFile string
}

// NewRootCommand creates the root command of hyp.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:   "hyp",
		Short: "hyp - weighted hypergraph filters",
		Long: `Single-purpose filters over weighted hypergraphs in the hgtext format.

Every command reads from the files named on the command line (or stdin)
and writes the result to stdout. Nothing is written when a command fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidWeights, opts.Weight) {
				return fmt.Errorf("invalid weight %q: must be one of %v", opts.Weight, ValidWeights)
			}

			return a.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides the config")
	cmd.PersistentFlags().StringVar(&opts.Weight, "weight", weightViterbi, "weight semiring (viterbi|log|feature|expectation)")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus text metrics to this file after the run")

	// Subcommands
	cmd.AddCommand(newPrintCommand(a))
	cmd.AddCommand(newTrimCommand(a))
	cmd.AddCommand(newInsideCommand(a))
	cmd.AddCommand(newBestPathCommand(a))
	cmd.AddCommand(newPruneCommand(a))
	cmd.AddCommand(newDeterminizeCommand(a))
	cmd.AddCommand(newComposeCommand(a))

	return cmd
}
