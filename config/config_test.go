package config_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/hyperlath/compose"
	"github.com/katalvlaran/hyperlath/config"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/prune"
	"github.com/katalvlaran/hyperlath/shortest"
)

// ConfigSuite covers loading, validation and option translation.
type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaultIsValid() {
	c := config.Default()
	s.Require().NoError(c.Validate())
	s.Equal(1, c.Prune.NBest)
	s.Equal("output", c.Compose.Side)
	s.Equal(determinize.DefaultMaxStates, c.Determinize.MaxStates)
	s.Equal(shortest.DefaultMaxIterations, c.Inside.MaxIterations)
}

func (s *ConfigSuite) TestLoadFile() {
	c, err := config.Load(filepath.Join("testdata", "full.yaml"))
	s.Require().NoError(err)
	s.True(c.Determinize.EpsilonNormal)
	s.False(c.Determinize.RhoNormal)
	s.True(c.Determinize.PhiNormal)
	s.Equal(5000, c.Determinize.MaxStates)
	s.Equal(0.001, c.Determinize.Delta)
	s.Equal(determinize.DefaultClosureCacheSize, c.Determinize.ClosureCacheSize)
	s.Equal("input", c.Compose.Side)
	s.Equal(64, c.Compose.ClosureCacheSize)
	s.Equal(2.5, c.Prune.Margin)
	s.Equal("knuth", c.Prune.Search)
	s.Equal(50, c.Inside.MaxIterations)
	s.Equal(shortest.DefaultDelta, c.Inside.Delta)
	s.Equal("json", c.Log.Format)
}

func (s *ConfigSuite) TestLoadErrors() {
	_, err := config.Load(filepath.Join("testdata", "missing.yaml"))
	s.ErrorIs(err, fs.ErrNotExist)

	_, err = config.Load(filepath.Join("testdata", "unknown.yaml"))
	s.ErrorIs(err, config.ErrConfig)
	s.Contains(err.Error(), "beam")

	_, err = config.Load(filepath.Join("testdata", "invalid.yaml"))
	s.ErrorIs(err, config.ErrConfig)
	var ce *config.ConfigError
	s.Require().ErrorAs(err, &ce)
	s.Contains(err.Error(), "compose.side")
	s.Contains(err.Error(), "prune.margin")
}

func (s *ConfigSuite) TestNBest() {
	c := config.Default()
	c.Prune.NBest = 0
	var ce *config.ConfigError
	s.Require().ErrorAs(c.Validate(), &ce)
	s.Equal("prune.nbest", ce.Field)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	c.Prune.NBest = 5
	s.Require().NoError(c.Validate())
	s.Equal(1, c.Prune.NBest)
	s.Contains(buf.String(), "requested=5")
}

func (s *ConfigSuite) TestTranslate() {
	c := config.Default()
	c.Determinize.EpsilonNormal = true
	c.Determinize.SigmaNormal = true
	c.Determinize.MaxStates = 7
	c.Compose.Side = "input"
	c.Prune.Search = "knuth"
	c.Inside.MaxIterations = 3
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	d := determinize.DefaultOptions()
	for _, opt := range c.DeterminizeOptions(l) {
		opt(&d)
	}
	s.Equal(determinize.EpsilonNormal|determinize.SigmaNormal, d.Flags)
	s.Equal(7, d.MaxStates)
	s.Same(l, d.Logger)

	co := compose.DefaultOptions()
	for _, opt := range c.ComposeOptions(l) {
		opt(&co)
	}
	s.Equal(compose.LeftInput, co.Side)

	p := prune.DefaultOptions()
	for _, opt := range c.PruneOptions(l) {
		opt(&p)
	}
	s.Equal(prune.SearchKnuth, p.Search)
	s.Equal(3, p.MaxIterations)

	in := shortest.DefaultOptions()
	for _, opt := range c.InsideOptions(l) {
		opt(&in)
	}
	s.Equal(3, in.MaxIterations)
}

func (s *ConfigSuite) TestNewLogger() {
	c := config.Default()
	c.Log.Level = "debug"
	c.Log.Format = "json"
	var buf bytes.Buffer
	l := c.NewLogger(&buf)
	s.True(l.Enabled(context.Background(), slog.LevelDebug))
	l.Debug("hello", "k", 1)

	var rec map[string]any
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &rec))
	s.Equal("hello", rec["msg"])

	c.Log.Level = "warn"
	s.False(c.NewLogger(&buf).Enabled(context.Background(), slog.LevelInfo))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HYPERLATH_PRUNE_MARGIN", "1.5")
	t.Setenv("HYPERLATH_COMPOSE_SIDE", "input")
	t.Setenv("HYPERLATH_DETERMINIZE_RHO_NORMAL", "true")
	t.Setenv("HYPERLATH_INSIDE_MAX_ITERATIONS", "9")

	c, err := config.Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)
	require.Equal(t, 1.5, c.Prune.Margin)
	require.Equal(t, "input", c.Compose.Side)
	require.True(t, c.Determinize.RhoNormal)
	require.Equal(t, 9, c.Inside.MaxIterations)
	// Keys the environment does not set keep the file value.
	require.Equal(t, 5000, c.Determinize.MaxStates)
}

func TestEnvErrors(t *testing.T) {
	t.Setenv("HYPERLATH_COMPOSE_MAX_STATES", "many")
	_, err := config.Load("")
	var ce *config.ConfigError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "HYPERLATH_COMPOSE_MAX_STATES", ce.Field)
	require.ErrorIs(t, err, config.ErrConfig)

	t.Setenv("HYPERLATH_COMPOSE_MAX_STATES", "0")
	_, err = config.Load("")
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "compose.max_states", ce.Field)
}

func TestEnvNames(t *testing.T) {
	for _, name := range config.Env() {
		require.True(t, strings.HasPrefix(name, config.EnvPrefix), name)
	}
	require.Contains(t, config.Env(), "HYPERLATH_LOG_LEVEL")
}
