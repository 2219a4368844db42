package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HYPERLATH_"

// Load returns Default() overlaid with the YAML file at path (skipped when
// path is empty) and the HYPERLATH_* environment, then validated.
//
// Errors:
//   - I/O errors reading path (errors.Is(err, fs.ErrNotExist) for a missing file).
//   - ErrConfig for malformed YAML, unknown keys or bad environment values.
//   - Validate errors.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if err := loadFile(path, c); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(c, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func loadFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}

	return nil
}

// binding ties an environment variable (without prefix) to a field.
type binding struct {
	name string
	ptr  any
}

// Env lists the environment variables read by Load.
func Env() []string {
	bs := bindings(Default())
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = EnvPrefix + b.name
	}

	return names
}

func bindings(c *Config) []binding {
	return []binding{
		{"DETERMINIZE_EPSILON_NORMAL", &c.Determinize.EpsilonNormal},
		{"DETERMINIZE_RHO_NORMAL", &c.Determinize.RhoNormal},
		{"DETERMINIZE_PHI_NORMAL", &c.Determinize.PhiNormal},
		{"DETERMINIZE_SIGMA_NORMAL", &c.Determinize.SigmaNormal},
		{"DETERMINIZE_MAX_STATES", &c.Determinize.MaxStates},
		{"DETERMINIZE_DELTA", &c.Determinize.Delta},
		{"DETERMINIZE_CLOSURE_CACHE_SIZE", &c.Determinize.ClosureCacheSize},
		{"COMPOSE_SIDE", &c.Compose.Side},
		{"COMPOSE_MAX_STATES", &c.Compose.MaxStates},
		{"COMPOSE_CLOSURE_CACHE_SIZE", &c.Compose.ClosureCacheSize},
		{"PRUNE_MARGIN", &c.Prune.Margin},
		{"PRUNE_NBEST", &c.Prune.NBest},
		{"PRUNE_SEARCH", &c.Prune.Search},
		{"INSIDE_DELTA", &c.Inside.Delta},
		{"INSIDE_MAX_ITERATIONS", &c.Inside.MaxIterations},
		{"LOG_LEVEL", &c.Log.Level},
		{"LOG_FORMAT", &c.Log.Format},
	}
}

// applyEnv overrides fields from lookup. Unparsable values are errors.
func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	for _, b := range bindings(c) {
		key := EnvPrefix + b.name
		v, ok := lookup(key)
		if !ok {
			continue
		}
		var err error
		switch p := b.ptr.(type) {
		case *bool:
			*p, err = strconv.ParseBool(v)
		case *int:
			*p, err = strconv.Atoi(v)
		case *float64:
			*p, err = strconv.ParseFloat(v, 64)
		case *string:
			*p = v
		}
		if err != nil {
			return &ConfigError{Field: key, Reason: fmt.Sprintf("cannot parse %q", v)}
		}
	}

	return nil
}
