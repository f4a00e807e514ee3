package config

import (
	"flag"
	"fmt"

	"github.com/chazu/molding/pkg/profile"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagOut     = flag.String("out", "", "Output directory")
	flagProfile = flag.String("profile", "", "Default profile: square, circle or complex")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagProfile != "" {
		k, err := profile.ParseKind(*flagProfile)
		if err != nil {
			return fmt.Errorf("-profile: %w", err)
		}
		cfg.Molding.Kind = k
	}
	return nil
}
