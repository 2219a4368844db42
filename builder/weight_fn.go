// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math/rand"
)

// WeightFn produces an arc weight literal from an optional RNG. It must be
// deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand) float64

// ConstantWeightFn always yields value.
// Complexity: O(1).
func ConstantWeightFn(value float64) WeightFn {
	return func(_ *rand.Rand) float64 { return value }
}

// UniformWeightFn samples uniformly in [min, max). Panics if max < min.
// Without an RNG it yields min.
func UniformWeightFn(min, max float64) WeightFn {
	if max < min {
		panic(fmt.Sprintf("UniformWeightFn: require min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil || max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// CyclicWeightFn yields values in order and wraps around. Panics on an
// empty list. The returned function is stateful; use one per Build call.
func CyclicWeightFn(values ...float64) WeightFn {
	if len(values) == 0 {
		panic("CyclicWeightFn: no values")
	}
	i := 0

	return func(_ *rand.Rand) float64 {
		v := values[i%len(values)]
		i++

		return v
	}
}
