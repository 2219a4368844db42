// Package config loads and validates the options of the hyp command line
// tool and translates them into algorithm options.
//
// Sources, lowest to highest priority:
//
//  1. Default(), which mirrors the DefaultOptions of every algorithm package.
//  2. A YAML file passed to Load. Unknown keys are rejected.
//  3. HYPERLATH_* environment variables (see Env).
//
// Validate checks struct tags with go-playground/validator. prune.nbest is
// the one clamped value: anything above 1 is logged as a warning and reset
// to 1, because only 1-best extraction exists.
//
// Example file:
//
//	determinize:
//	  epsilon_normal: false
//	  max_states: 100000
//	compose:
//	  side: output
//	prune:
//	  margin: 2.5
//	  nbest: 1
//	  search: inside
//	inside:
//	  delta: 1e-9
//	  max_iterations: 1000
//	log:
//	  level: info
//	  format: text
package config
