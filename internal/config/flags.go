package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/Faultbox/meshbake/pkg/sampling"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSeed    = flag.String("seed", "", "Random seed, any 32-bit signed integer (decimal or 0x hex)")
	flagSamples = flag.Int("samples", 0, "Number of samples to bake")
	flagOrder   = flag.String("order", "", "Sample ordering: none, uv-radial, nearest-anchor")
	flagOut     = flag.String("out", "", "Output directory for baked artifacts")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 0, 32)
		if err != nil {
			return fmt.Errorf("%w: -seed %q is not a 32-bit integer", sampling.ErrConfig, *flagSeed)
		}
		cfg.Bake.Seed = int32(seed)
	}
	if *flagSamples > 0 {
		cfg.Bake.SampleCount = *flagSamples
	}
	if *flagOrder != "" {
		cfg.Bake.Ordering = *flagOrder
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	return nil
}
