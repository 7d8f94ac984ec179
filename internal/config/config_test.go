package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/meshbake/pkg/math"
	"github.com/Faultbox/meshbake/pkg/sampling"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Bake.Seed != 0x123 {
		t.Errorf("expected seed 0x123, got %#x", cfg.Bake.Seed)
	}
	if cfg.Bake.SampleCount != 2048 {
		t.Errorf("expected sample count 2048, got %d", cfg.Bake.SampleCount)
	}
	if cfg.Bake.Ordering != "none" {
		t.Errorf("expected ordering 'none', got %s", cfg.Bake.Ordering)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %s", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshbake.yaml")

	yamlContent := `
bake:
  seed: 7
  sample_count: 512
  ordering: nearest-anchor
  anchors:
    - [0, 1, 0]
    - [2.5, 0, -1]

output:
  dir: "baked"

logging:
  level: "debug"
  log_file: "bake.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bake.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Bake.Seed)
	}
	if cfg.Bake.SampleCount != 512 {
		t.Errorf("expected sample count 512, got %d", cfg.Bake.SampleCount)
	}
	if cfg.Bake.Ordering != "nearest-anchor" {
		t.Errorf("expected ordering nearest-anchor, got %s", cfg.Bake.Ordering)
	}
	want := []math.Vec3{{X: 0, Y: 1, Z: 0}, {X: 2.5, Y: 0, Z: -1}}
	got := cfg.Bake.AnchorPoints()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("anchors = %v, want %v", got, want)
	}
	if cfg.Output.Dir != "baked" {
		t.Errorf("expected output dir 'baked', got %s", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "bake.log" {
		t.Errorf("expected log file 'bake.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
bake:
  sample_count: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshbake.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   int
	}{
		{"valid", func(*Config) {}, 0},
		{"zero samples", func(c *Config) { c.Bake.SampleCount = 0 }, 1},
		{"unknown ordering", func(c *Config) { c.Bake.Ordering = "spiral" }, 1},
		{"anchor ordering without anchors", func(c *Config) { c.Bake.Ordering = "nearest-anchor" }, 1},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, 1},
		{
			name: "everything wrong",
			mutate: func(c *Config) {
				c.Bake.SampleCount = -1
				c.Bake.Ordering = "spiral"
				c.Output.Dir = ""
				c.Logging.Level = "loud"
			},
			errs: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if got := len(multierr.Errors(err)); got != tt.errs {
				t.Errorf("Validate() returned %d errors (%v), want %d", got, err, tt.errs)
			}
			if err != nil && !errors.Is(err, sampling.ErrConfig) {
				t.Errorf("Validate() error = %v, want it to wrap %v", err, sampling.ErrConfig)
			}
		})
	}
}

func TestBakeOptions(t *testing.T) {
	cfg := Default()
	cfg.Bake.Seed = 99
	cfg.Bake.SampleCount = 64
	cfg.Bake.Ordering = "uv-radial"

	opts, err := cfg.Bake.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.Seed != 99 || opts.Count != 64 {
		t.Errorf("Options() = seed %d count %d, want 99/64", opts.Seed, opts.Count)
	}
	if opts.Ordering.Name != sampling.OrderUVRadial {
		t.Errorf("Options() ordering = %s, want %s", opts.Ordering.Name, sampling.OrderUVRadial)
	}

	cfg.Bake.Ordering = "bogus"
	if _, err := cfg.Bake.Options(); !errors.Is(err, sampling.ErrConfig) {
		t.Errorf("Options() error = %v, want %v", err, sampling.ErrConfig)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("bake:\n  seed: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshbake.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = "42" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Bake.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "seed zero overrides",
			setup: func() { *flagSeed = "0" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Bake.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "negative seed",
			setup: func() { *flagSeed = "-7" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.Seed != -7 {
					t.Errorf("expected seed -7, got %d", cfg.Bake.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "hex seed",
			setup: func() { *flagSeed = "0x123" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.Seed != 0x123 {
					t.Errorf("expected seed 291, got %d", cfg.Bake.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "samples flag",
			setup: func() { *flagSamples = 4096 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.SampleCount != 4096 {
					t.Errorf("expected sample count 4096, got %d", cfg.Bake.SampleCount)
				}
			},
			teardown: func() { *flagSamples = 0 },
		},
		{
			name:  "order and out flags",
			setup: func() { *flagOrder = "uv-radial"; *flagOut = "/tmp/baked" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bake.Ordering != "uv-radial" {
					t.Errorf("expected ordering uv-radial, got %s", cfg.Bake.Ordering)
				}
				if cfg.Output.Dir != "/tmp/baked" {
					t.Errorf("expected output dir /tmp/baked, got %s", cfg.Output.Dir)
				}
			},
			teardown: func() { *flagOrder = ""; *flagOut = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}

			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsRejectsBadSeed(t *testing.T) {
	tests := []string{"4294967296", "2147483648", "-2147483649", "seven", "1.5"}
	for _, seed := range tests {
		t.Run(seed, func(t *testing.T) {
			*flagSeed = seed
			defer func() { *flagSeed = "" }()

			cfg := Default()
			if err := applyFlags(cfg); !errors.Is(err, sampling.ErrConfig) {
				t.Errorf("applyFlags() error = %v, want %v", err, sampling.ErrConfig)
			}
			if cfg.Bake.Seed != sampling.DefaultSeed {
				t.Errorf("seed changed to %d on a rejected flag", cfg.Bake.Seed)
			}
		})
	}
}

func TestApplyFlagsSeedBounds(t *testing.T) {
	tests := []struct {
		flag string
		want int32
	}{
		{"2147483647", 2147483647},
		{"-2147483648", -2147483648},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			*flagSeed = tt.flag
			defer func() { *flagSeed = "" }()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}
			if cfg.Bake.Seed != tt.want {
				t.Errorf("seed = %d, want %d", cfg.Bake.Seed, tt.want)
			}
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshbake.yaml")

	yamlContent := `
bake:
  seed: 11
  sample_count: 100
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSamples = 300
	defer func() {
		*flagConfig = ""
		*flagSamples = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bake.SampleCount != 300 {
		t.Errorf("expected sample count 300 from flag, got %d", cfg.Bake.SampleCount)
	}
	if cfg.Bake.Seed != 11 {
		t.Errorf("expected seed 11 from file, got %d", cfg.Bake.Seed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshbake.yaml")
	if err := os.WriteFile(configPath, []byte("bake:\n  sample_count: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, sampling.ErrConfig) {
		t.Errorf("Load() error = %v, want %v", err, sampling.ErrConfig)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meshbake.yaml")
	cfg := Default()
	cfg.Bake.Ordering = "uv-radial"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Bake.Ordering != "uv-radial" {
		t.Errorf("saved ordering = %s, want uv-radial", loaded.Bake.Ordering)
	}
}
