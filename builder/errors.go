// SPDX-License-Identifier: MIT

package builder

import "errors"

var (
	// ErrTooFewStates indicates a size parameter below its minimum.
	ErrTooFewStates = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil constructor or a rejected mutation.
	ErrConstructFailed = errors.New("builder: construction failed")
)
