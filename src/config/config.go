// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
)

// EnvConfigFile names the environment variable consulted when no
// configuration path is given explicitly.
const EnvConfigFile = "X509_DER_CONFIG_FILE"

// Defaults applied before a configuration file is merged.
const (
	DefaultFormat   = "text"
	DefaultWarnDays = 30
)

// Formats lists the accepted values of Output.Format.
var Formats = []string{"text", "tree", "table", "json", "yaml", "pem", "der"}

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the inspector configuration.
type Config struct {
	// Decoder: resource limits for each certificate decode
	Decoder x509der.Limits `json:"decoder" yaml:"decoder"`

	// Output: rendering settings
	Output struct {
		// Format: one of [Formats]
		Format string `json:"format" yaml:"format"`
		// WarnDays: certificates expiring within this many days are flagged
		WarnDays int `json:"warnDays" yaml:"warnDays"`
	} `json:"output" yaml:"output"`
}

// Default returns a Config holding only default values.
func Default() *Config {
	c := &Config{Decoder: x509der.DefaultLimits()}
	c.Output.Format = DefaultFormat
	c.Output.WarnDays = DefaultWarnDays
	return c
}

// detectConfigFormat determines the configuration file format based on file extension.
// Extensions are matched case-insensitively; anything other than .yaml or .yml
// is read as JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load loads the configuration from a JSON or YAML file or returns defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: the loaded configuration with defaults applied
//   - error: if the configuration file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_DER_CONFIG_FILE is checked if configPath is empty
//  3. Config file values override defaults (if a path was found)
//  4. Invalid values are reset to their defaults
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config file: %w", err)
	}
	if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
		return nil, err
	}

	config.normalize()
	return config, nil
}

// normalize resets out-of-range values to their defaults.
func (c *Config) normalize() {
	defaults := x509der.DefaultLimits()
	if c.Decoder.MaxDepth <= 0 {
		c.Decoder.MaxDepth = defaults.MaxDepth
	}
	if c.Decoder.MaxTotalLength <= 0 {
		c.Decoder.MaxTotalLength = defaults.MaxTotalLength
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if !slices.Contains(Formats, c.Output.Format) {
		c.Output.Format = DefaultFormat
	}
	if c.Output.WarnDays < 0 {
		c.Output.WarnDays = DefaultWarnDays
	}
}
