package config

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/hyperlath/compose"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/prune"
	"github.com/katalvlaran/hyperlath/shortest"
)

// DeterminizeOptions translates the determinize section.
func (c *Config) DeterminizeOptions(l *slog.Logger) []determinize.Option {
	var flags determinize.Flags
	if c.Determinize.EpsilonNormal {
		flags |= determinize.EpsilonNormal
	}
	if c.Determinize.RhoNormal {
		flags |= determinize.RhoNormal
	}
	if c.Determinize.PhiNormal {
		flags |= determinize.PhiNormal
	}
	if c.Determinize.SigmaNormal {
		flags |= determinize.SigmaNormal
	}

	return []determinize.Option{
		determinize.WithSpecialSymbols(flags),
		determinize.WithMaxStates(c.Determinize.MaxStates),
		determinize.WithDelta(c.Determinize.Delta),
		determinize.WithClosureCacheSize(c.Determinize.ClosureCacheSize),
		determinize.WithLogger(l),
	}
}

// ComposeOptions translates the compose section.
func (c *Config) ComposeOptions(l *slog.Logger) []compose.Option {
	side := compose.LeftOutput
	if c.Compose.Side == "input" {
		side = compose.LeftInput
	}

	return []compose.Option{
		compose.WithLabelSide(side),
		compose.WithMaxStates(c.Compose.MaxStates),
		compose.WithClosureCacheSize(c.Compose.ClosureCacheSize),
		compose.WithLogger(l),
	}
}

// InsideOptions translates the inside section.
func (c *Config) InsideOptions(l *slog.Logger) []shortest.Option {
	return []shortest.Option{
		shortest.WithDelta(c.Inside.Delta),
		shortest.WithMaxIterations(c.Inside.MaxIterations),
		shortest.WithLogger(l),
	}
}

// PruneOptions translates the prune section; the inside section supplies
// the fixed-point settings.
func (c *Config) PruneOptions(l *slog.Logger) []prune.Option {
	search := prune.SearchInside
	if c.Prune.Search == "knuth" {
		search = prune.SearchKnuth
	}

	return []prune.Option{
		prune.WithSearch(search),
		prune.WithDelta(c.Inside.Delta),
		prune.WithMaxIterations(c.Inside.MaxIterations),
		prune.WithLogger(l),
	}
}

// NewLogger builds the slog logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
