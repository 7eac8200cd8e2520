// Package config loads passforge settings from YAML files.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/passforge/passforge/generator"
)

// Duration wraps time.Duration so YAML values like "30s" parse directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Pool holds the worker pool settings.
type Pool struct {
	Size        int      `yaml:"size"`
	MaxRetries  int      `yaml:"max_retries"`
	TaskTimeout Duration `yaml:"task_timeout"`
}

// Config is the root of the YAML document.
type Config struct {
	Pool        Pool             `yaml:"pool"`
	Generator   generator.Config `yaml:"generator"`
	MetricsAddr string           `yaml:"metrics_addr"`
	Verbose     bool             `yaml:"verbose"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Pool: Pool{
			Size:        runtime.GOMAXPROCS(0),
			MaxRetries:  3,
			TaskTimeout: Duration(30 * time.Second),
		},
		Generator: generator.Default(),
	}
}

// Load reads path and overlays it on the defaults, so partial files work.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Pool.Size <= 0 {
		return Config{}, fmt.Errorf("config %s: pool size must be positive", path)
	}
	return cfg, nil
}
