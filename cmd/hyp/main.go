// Command hyp runs weighted hypergraph algorithms as text filters.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/hyperlath/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hyp:", err)
		os.Exit(1)
	}
}
