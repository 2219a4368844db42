package builder_test

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/builder"
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

// ExampleChart builds the forest of all bracketings of four tokens.
func ExampleChart() {
	h, err := builder.Build[weight.Viterbi](
		[]core.Option{core.WithInArcs()},
		nil,
		builder.Chart[weight.Viterbi]("the", "old", "man", "left"),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	st := h.Stats()
	fmt.Println("states:", st.States, "arcs:", st.Arcs, "fsa:", st.FSA)

	// Output:
	// states: 14 arcs: 14 fsa: false
}
