// SPDX-License-Identifier: MIT
//
// impl_random.go: seeded random acyclic acceptors.
//
// Model:
//   - n structural states; start is the first, final the last.
//   - For every pair i < j (i asc, j asc) and every symbol of the alphabet
//     (in order) an arc i -sym-> j is included with probability p.
//   - A backbone i -alphabet[0]-> i+1 is always present, so the final state
//     is reachable.
//
// Determinism: trials run in the fixed order above, so a seed fixes the result.

package builder

import (
	"fmt"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/weight"
)

const (
	methodRandomDAG = "RandomDAG"
	minRandomStates = 2
)

// RandomDAG samples an acyclic acceptor over n ≥ 2 states and a non-empty
// alphabet with arc probability p ∈ [0,1]. Requires WithSeed or WithRand.
// Complexity: O(n² · |alphabet|) trials.
func RandomDAG[W weight.Weight[W]](n int, p float64, alphabet ...string) Constructor[W] {
	return func(h *core.Hypergraph[W], cfg builderConfig) error {
		// 1) Validate.
		if n < minRandomStates {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomDAG, n, minRandomStates, ErrTooFewStates)
		}
		if len(alphabet) == 0 {
			return fmt.Errorf("%s: empty alphabet: %w", methodRandomDAG, ErrTooFewStates)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomDAG, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomDAG, ErrNeedRandSource)
		}

		// 2) States and backbone.
		first := addStates(h, n)
		for i := 0; i+1 < n; i++ {
			src := first + core.StateID(i)
			if err := addTransition(h, cfg, methodRandomDAG, src, src+1, alphabet[0]); err != nil {
				return err
			}
		}

		// 3) Bernoulli trials in fixed order.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for _, sym := range alphabet {
					if cfg.rng.Float64() >= p {
						continue
					}
					if err := addTransition(h, cfg, methodRandomDAG, first+core.StateID(i), first+core.StateID(j), sym); err != nil {
						return err
					}
				}
			}
		}

		// 4) Markers.
		if err := h.SetStart(first); err != nil {
			return fmt.Errorf("%s: %w", methodRandomDAG, err)
		}

		return h.SetFinal(first + core.StateID(n-1))
	}
}
