package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/dfs"
	"github.com/katalvlaran/hyperlath/weight"
)

// ExampleComponents shows the bottom-up component order on a small cycle.
//
//	0 → 1 ⇄ 2 → 3   (arrows point from tail to head)
func ExampleComponents() {
	h := core.New[weight.Log]()
	for i := 0; i < 4; i++ {
		h.AddState()
	}
	_, _ = h.AddArc(1, []core.StateID{0}, 0)
	_, _ = h.AddArc(2, []core.StateID{1}, 0)
	_, _ = h.AddArc(1, []core.StateID{2}, 0)
	_, _ = h.AddArc(3, []core.StateID{2}, 0)

	comps, _ := dfs.Components(h)
	for _, c := range comps {
		fmt.Println(c.States, c.Cyclic)
	}

	// Output:
	// [0] false
	// [1 2] true
	// [3] false
}
