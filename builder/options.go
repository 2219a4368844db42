// SPDX-License-Identifier: MIT
//
// options.go: functional options. Option constructors validate and panic on
// meaningless inputs; constructors themselves never panic.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/hyperlath/symbol"
)

// Option customizes a Build call.
type Option func(*builderConfig)

// WithVocabulary interns labels into v instead of a fresh vocabulary.
// Panics on nil.
func WithVocabulary(v *symbol.Vocabulary) Option {
	if v == nil {
		panic("builder: WithVocabulary(nil)")
	}

	return func(c *builderConfig) { c.vocab = v }
}

// WithRand provides an explicit RNG for stochastic constructors. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG; use it to lock outcomes in tests.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn sets the per-arc weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}

	return func(c *builderConfig) { c.weightFn = fn }
}
