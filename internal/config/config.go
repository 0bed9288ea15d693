package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats for record listings
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// SourceEnv overrides the configured source when set
const SourceEnv = "JOBINSIGHTS_SOURCE"

// Config represents the application configuration
type Config struct {
	Source   string `yaml:"source"`
	Table    string `yaml:"table"`
	Proxy    string `yaml:"proxy"`
	Progress bool   `yaml:"progress"`
	Debug    bool   `yaml:"debug"`
	Output   string `yaml:"output"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Source: "data/jobs.csv",
		Table:  "jobs",
		Output: OutputTable,
	}
}

// Load reads the configuration from path, or from the first file found on the
// search path when path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if src := os.Getenv(SourceEnv); src != "" {
		cfg.Source = src
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("invalid output %q: must be %s or %s", c.Output, OutputTable, OutputJSON)
	}
	if c.Table == "" {
		return errors.New("table must not be empty")
	}
	return nil
}

func findConfigPath() string {
	paths := []string{"jobinsights.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "jobinsights", "config.yaml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
