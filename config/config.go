package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/hyperlath/compose"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/shortest"
)

// ErrConfig is wrapped by every *ConfigError.
var ErrConfig = errors.New("config: invalid configuration")

// ConfigError names the offending key.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrConfig) succeed.
func (e *ConfigError) Unwrap() error { return ErrConfig }

// Config is the full option set of the tool.
type Config struct {
	Determinize DeterminizeConfig `yaml:"determinize"`
	Compose     ComposeConfig     `yaml:"compose"`
	Prune       PruneConfig       `yaml:"prune"`
	Inside      InsideConfig      `yaml:"inside"`
	Log         LogConfig         `yaml:"log"`
}

// DeterminizeConfig holds the determinize options. The *Normal flags make
// the corresponding special symbol an ordinary one.
type DeterminizeConfig struct {
	EpsilonNormal    bool    `yaml:"epsilon_normal"`
	RhoNormal        bool    `yaml:"rho_normal"`
	PhiNormal        bool    `yaml:"phi_normal"`
	SigmaNormal      bool    `yaml:"sigma_normal"`
	MaxStates        int     `yaml:"max_states" validate:"gte=1"`
	Delta            float64 `yaml:"delta" validate:"gte=0"`
	ClosureCacheSize int     `yaml:"closure_cache_size" validate:"gte=1"`
}

// ComposeConfig holds the compose options. Side is "output" (match the left
// output labels, the default) or "input".
type ComposeConfig struct {
	Side             string `yaml:"side" validate:"oneof=output input"`
	MaxStates        int    `yaml:"max_states" validate:"gte=1"`
	ClosureCacheSize int    `yaml:"closure_cache_size" validate:"gte=1"`
}

// PruneConfig holds the beam and best-path options. Margin is in nats.
type PruneConfig struct {
	Margin float64 `yaml:"margin" validate:"gte=0"`
	NBest  int     `yaml:"nbest"`
	Search string  `yaml:"search" validate:"oneof=inside knuth"`
}

// InsideConfig holds the fixed-point options shared by inside, outside and
// the inside-based searches.
type InsideConfig struct {
	Delta         float64 `yaml:"delta" validate:"gte=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=1"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the algorithm defaults, margin 0, nbest 1, inside search,
// info-level text logs.
func Default() *Config {
	return &Config{
		Determinize: DeterminizeConfig{
			MaxStates:        determinize.DefaultMaxStates,
			Delta:            determinize.DefaultDelta,
			ClosureCacheSize: determinize.DefaultClosureCacheSize,
		},
		Compose: ComposeConfig{
			Side:             "output",
			MaxStates:        compose.DefaultMaxStates,
			ClosureCacheSize: compose.DefaultClosureCacheSize,
		},
		Prune: PruneConfig{
			NBest:  1,
			Search: "inside",
		},
		Inside: InsideConfig{
			Delta:         shortest.DefaultDelta,
			MaxIterations: shortest.DefaultMaxIterations,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks every field and clamps prune.nbest.
//
// Preconditions and validation (in order):
//  1. prune.nbest < 1 is an error; > 1 is logged through slog.Default and
//     clamped to 1.
//  2. Struct tags; every violation becomes one *ConfigError, joined with errors.Join.
func (c *Config) Validate() error {
	// 1) nbest.
	switch {
	case c.Prune.NBest < 1:
		return &ConfigError{Field: "prune.nbest", Reason: fmt.Sprintf("must be >= 1, got %d", c.Prune.NBest)}
	case c.Prune.NBest > 1:
		slog.Default().Warn("config: only 1-best extraction is supported, clamping prune.nbest",
			"requested", c.Prune.NBest)
		c.Prune.NBest = 1
	}

	// 2) Tags.
	return validateStruct(c)
}
