package shortest_test

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/shortest"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// ExampleInside computes the best-path probability of a two-word acceptor
// with a competing shortcut.
func ExampleInside() {
	h := core.New[weight.Viterbi](core.WithInArcs())
	s0, s1, s2 := h.AddState(), h.AddState(), h.AddState()
	a := h.LabelState(symbol.Acceptor(symbol.FirstUser))
	_, _ = h.AddArc(s1, []core.StateID{s0, a}, 0.5)
	_, _ = h.AddArc(s2, []core.StateID{s1, a}, 0.5)
	_, _ = h.AddArc(s2, []core.StateID{s0, a}, 0.125)
	_ = h.SetStart(s0)
	_ = h.SetFinal(s2)

	in, err := shortest.Inside(h)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("total:", in.Total())

	// Output:
	// total: 0.25
}
