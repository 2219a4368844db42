package determinize_test

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// ExampleDeterminize merges two ε-separated paths spelling the same word.
func ExampleDeterminize() {
	h := core.New[weight.Viterbi]()
	s0, s1, s2, s3 := h.AddState(), h.AddState(), h.AddState(), h.AddState()
	x := h.LabelState(symbol.Acceptor(symbol.FirstUser))
	_, _ = h.AddArc(s1, []core.StateID{s0}, 0.3)
	_, _ = h.AddArc(s2, []core.StateID{s0}, 0.7)
	_, _ = h.AddArc(s3, []core.StateID{s1, x}, 1)
	_, _ = h.AddArc(s3, []core.StateID{s2, x}, 1)
	_ = h.SetStart(s0)
	_ = h.SetFinal(s3)

	d, err := determinize.Determinize(h)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("deterministic:", determinize.IsDeterministic(d), "arcs:", d.NumArcs())
	fmt.Println("weight:", d.Arc(0).Weight)

	// Output:
	// deterministic: true arcs: 1
	// weight: 0.7
}
