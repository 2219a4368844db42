// SPDX-License-Identifier: MIT
//
// impl_chart.go: the forest of all binary bracketings of a token sequence.
//
// Model:
//   - One structural state per span [i,j), 0 ≤ i < j ≤ n, created in order of
//     increasing width, then i asc.
//   - Leaves: span [i,i+1) ← token i.
//   - Rules: span [i,j) ← span [i,k) span [k,j) for every split k asc.
//   - Final is span [0,n); no start state, leaves are the axioms.
//
// The number of derivations of the final state is the Catalan number C(n-1).

package builder

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

const methodChart = "Chart"

// Chart builds the binary-bracketing forest over tokens (n ≥ 1).
// Complexity: O(n²) states, O(n³) arcs.
func Chart[W weight.Weight[W]](tokens ...string) Constructor[W] {
	return func(h *core.Hypergraph[W], cfg builderConfig) error {
		n := len(tokens)
		if n < 1 {
			return fmt.Errorf("%s: n=%d < 1: %w", methodChart, n, ErrTooFewStates)
		}

		// 1) Span states by width.
		span := make([][]core.StateID, n+1)
		for i := range span {
			span[i] = make([]core.StateID, n+1)
		}
		for width := 1; width <= n; width++ {
			for i := 0; i+width <= n; i++ {
				span[i][i+width] = h.AddState()
			}
		}

		// 2) Leaves.
		for i, tok := range tokens {
			w, err := nextWeight[W](cfg)
			if err != nil {
				return fmt.Errorf("%s: weight: %w", methodChart, err)
			}
			lex := h.LabelState(labelFor(cfg, tok))
			if _, err = h.AddArc(span[i][i+1], []core.StateID{lex}, w); err != nil {
				return fmt.Errorf("%s: leaf %d: %w: %w", methodChart, i, ErrConstructFailed, err)
			}
		}

		// 3) Binary rules by width, then i, then split.
		for width := 2; width <= n; width++ {
			for i := 0; i+width <= n; i++ {
				j := i + width
				for k := i + 1; k < j; k++ {
					w, err := nextWeight[W](cfg)
					if err != nil {
						return fmt.Errorf("%s: weight: %w", methodChart, err)
					}
					if _, err = h.AddArc(span[i][j], []core.StateID{span[i][k], span[k][j]}, w); err != nil {
						return fmt.Errorf("%s: rule [%d,%d,%d): %w: %w", methodChart, i, k, j, ErrConstructFailed, err)
					}
				}
			}
		}

		return h.SetFinal(span[0][n])
	}
}
