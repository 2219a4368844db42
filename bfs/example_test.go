package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/bfs"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// ExampleTrim drops a branch that never reaches the final state.
//
//	0 -a-> 1 -a-> 2 (final)
//	0 -a-> 3                (dead end)
func ExampleTrim() {
	h := core.New[weight.Viterbi](core.WithOutArcs())
	for i := 0; i < 4; i++ {
		h.AddState()
	}
	a := h.LabelState(symbol.Acceptor(symbol.FirstUser))
	_, _ = h.AddArc(1, []core.StateID{0, a}, 0.5)
	_, _ = h.AddArc(2, []core.StateID{1, a}, 0.5)
	_, _ = h.AddArc(3, []core.StateID{0, a}, 0.5)
	_ = h.SetStart(0)
	_ = h.SetFinal(2)

	mapping, _ := bfs.Trim(h)
	fmt.Println("mapping:", mapping)
	fmt.Println("states:", h.NumStates(), "arcs:", h.NumArcs())

	// Output:
	// mapping: [0 1 2 -1 3]
	// states: 4 arcs: 2
}
