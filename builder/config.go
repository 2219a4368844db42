// SPDX-License-Identifier: MIT
//
// config.go: resolved builder settings.
//
// Deterministic defaults:
//   - vocab    = a fresh symbol.Vocabulary per Build call
//   - rng      = nil (pure unless seeded)
//   - weightFn = nil (every arc weighs One)

package builder

import (
	"math/rand"
	"strconv"

	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// builderConfig is passed by value to constructors.
type builderConfig struct {
	vocab    *symbol.Vocabulary
	rng      *rand.Rand
	weightFn WeightFn
}

// newBuilderConfig applies opts in order (last wins).
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...Option) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.vocab == nil {
		cfg.vocab = symbol.NewVocabulary()
	}

	return cfg
}

// symbolFor interns token.
func (c builderConfig) symbolFor(token string) symbol.ID { return c.vocab.Add(token) }

// nextWeight draws the next arc weight.
func nextWeight[W weight.Weight[W]](c builderConfig) (W, error) {
	if c.weightFn == nil {
		return weight.One[W](), nil
	}

	return weight.Parse[W](strconv.FormatFloat(c.weightFn(c.rng), 'g', -1, 64))
}
