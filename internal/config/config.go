// Package config handles bake configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/meshbake/internal/logger"
	"github.com/Faultbox/meshbake/pkg/math"
	"github.com/Faultbox/meshbake/pkg/sampling"
)

// Config holds all meshbake settings.
type Config struct {
	Bake    BakeConfig    `yaml:"bake"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BakeConfig holds the parameters that determine the baked sample set.
type BakeConfig struct {
	Seed        int32        `yaml:"seed"`
	SampleCount int          `yaml:"sample_count"`
	Ordering    string       `yaml:"ordering"` // none, uv-radial, nearest-anchor
	Anchors     [][3]float32 `yaml:"anchors"`  // nearest-anchor positions
}

// OutputConfig holds where baked artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Bake: BakeConfig{
			Seed:        sampling.DefaultSeed,
			SampleCount: sampling.DefaultCount,
			Ordering:    sampling.OrderNone,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// AnchorPoints returns the configured anchors as vectors.
func (b BakeConfig) AnchorPoints() []math.Vec3 {
	pts := make([]math.Vec3, len(b.Anchors))
	for i, a := range b.Anchors {
		pts[i] = math.Vec3{X: a[0], Y: a[1], Z: a[2]}
	}
	return pts
}

// Options converts the bake settings into sampling options.
func (b BakeConfig) Options() (sampling.Options, error) {
	ord, err := sampling.ParseOrdering(b.Ordering, b.AnchorPoints())
	if err != nil {
		return sampling.Options{}, err
	}
	return sampling.Options{
		Seed:     b.Seed,
		Count:    b.SampleCount,
		Ordering: ord,
	}, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Bake.SampleCount < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: sample_count %d must be at least 1",
			sampling.ErrConfig, c.Bake.SampleCount))
	}
	if _, perr := sampling.ParseOrdering(c.Bake.Ordering, nil); perr != nil {
		err = multierr.Append(err, perr)
	}
	if c.Bake.Ordering == sampling.OrderNearestAnchor && len(c.Bake.Anchors) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: ordering %s needs at least one anchor",
			sampling.ErrConfig, sampling.OrderNearestAnchor))
	}
	if c.Output.Dir == "" {
		err = multierr.Append(err, fmt.Errorf("%w: output dir is empty", sampling.ErrConfig))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		err = multierr.Append(err, fmt.Errorf("%w: unknown log level %q", sampling.ErrConfig, c.Logging.Level))
	}
	return err
}
