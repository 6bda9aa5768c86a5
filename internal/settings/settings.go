// Package settings loads the optional minilang.yaml project file: a
// diagnostic severity threshold and a default color mode for the CLI
// driver, the way funxy/internal/ext/config.go loads funxy.yaml with
// yaml.v3.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anycow/vuglang/internal/diagnostics"
)

// Config is the shape of minilang.yaml.
type Config struct {
	// Severity is the minimum severity printed to the report; diagnostics
	// below this threshold are still counted but not rendered. One of
	// "info", "hint", "warning", "error", "fatal". Empty means no filter.
	Severity string `yaml:"severity,omitempty"`

	// Color is the default color mode when -color is not given on the
	// command line: "auto", "always", or "never".
	Color string `yaml:"color,omitempty"`
}

// Default returns the built-in Config: no severity filter, auto color.
func Default() *Config {
	return &Config{Color: "auto"}
}

// Load parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("settings: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Threshold maps Severity to a diagnostics.Severity, defaulting to Info
// (print everything) when Severity is empty or unrecognized.
func (c *Config) Threshold() diagnostics.Severity {
	switch c.Severity {
	case "hint":
		return diagnostics.Hint
	case "warning":
		return diagnostics.Warning
	case "error":
		return diagnostics.Error
	case "fatal":
		return diagnostics.Fatal
	default:
		return diagnostics.Info
	}
}
