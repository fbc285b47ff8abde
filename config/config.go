// Package config loads the optional run configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = ".redos-linter.yml"

// Config is the full run configuration. Every field is optional; zero values
// are replaced by defaults after loading.
type Config struct {
	Logger Logger `yaml:"logger"`
	Oracle Oracle `yaml:"oracle"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Oracle configures how the external checker subprocess is launched.
type Oracle struct {
	Exec    string        `yaml:"exec"`
	Checker string        `yaml:"checker"`
	Bundle  string        `yaml:"bundle"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config from path. An empty path falls back to
// DefaultPath, and a missing default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer file.Close()

	cfg := &Config{}
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Oracle.Exec == "" {
		c.Oracle.Exec = "deno"
	}
	if c.Oracle.Checker == "" {
		c.Oracle.Checker = "checker.js"
	}
	if c.Oracle.Timeout <= 0 {
		c.Oracle.Timeout = 5 * time.Minute
	}
}
