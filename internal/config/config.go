// Package config handles loading and saving generator settings.
package config

import (
	"github.com/chazu/molding/pkg/engine"
	"github.com/chazu/molding/pkg/kernel/weld"
	"github.com/chazu/molding/pkg/molding"
	"github.com/chazu/molding/pkg/profile"
	"github.com/chazu/molding/pkg/section"
)

// Config holds all settings.
type Config struct {
	Molding MoldingConfig `yaml:"molding"`
	Curve   CurveConfig   `yaml:"curve"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MoldingConfig holds the parameters new moldings start from.
type MoldingConfig struct {
	profile.Spec  `yaml:",inline"`
	Offset        float64 `yaml:"offset"`
	ZOffset       float64 `yaml:"z_offset"`
	Material      int     `yaml:"material"`
	ClosedProfile bool    `yaml:"closed_profile"`
	CapEnds       bool    `yaml:"cap_ends"`
	TrimJoins     bool    `yaml:"trim_joins"`
	Tolerance     float64 `yaml:"closure_tolerance"`
}

// CurveConfig holds spline sampling settings.
type CurveConfig struct {
	Resolution int  `yaml:"resolution"` // bezier samples per span
	Reverse    bool `yaml:"reverse"`
}

// OutputConfig holds mesh output settings.
type OutputConfig struct {
	Dir         string  `yaml:"dir"`
	WeldEpsilon float64 `yaml:"weld_epsilon"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Molding: MoldingConfig{
			Spec:          profile.Default(),
			ClosedProfile: true,
			Tolerance:     section.DefaultTolerance,
		},
		Curve: CurveConfig{
			Resolution: engine.DefaultResolution,
		},
		Output: OutputConfig{
			Dir:         ".",
			WeldEpsilon: weld.DefaultEpsilon,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Params converts the molding section to generator parameters without parts.
func (m MoldingConfig) Params() molding.Params {
	return molding.Params{
		Profile:       m.Spec,
		Offset:        m.Offset,
		ZOffset:       m.ZOffset,
		MaterialID:    m.Material,
		ClosedProfile: m.ClosedProfile,
		CapEnds:       m.CapEnds,
		TrimJoins:     m.TrimJoins,
		Tolerance:     m.Tolerance,
	}
}

// EngineOptions returns the engine options matching c.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithBaseParams(c.Molding.Params()),
		engine.WithCurveDefaults(c.Curve.Resolution, c.Curve.Reverse),
	}
}
