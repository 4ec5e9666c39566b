package config

import (
	"fmt"
	"strings"

	"github.com/yndnr/isis-go/internal/core/domain"
)

// Config is the configuration for the isis command.
type Config struct {
	Log     LogConfig     `koanf:"log" yaml:"log" json:"log"`
	Output  OutputConfig  `koanf:"output" yaml:"output" json:"output"`
	Stego   StegoConfig   `koanf:"stego" yaml:"stego" json:"stego"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics" json:"metrics"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `koanf:"format" yaml:"format" json:"format"` // text, json
}

// OutputConfig configures command output.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format" json:"format"` // table, json, yaml
}

// StegoConfig tunes embedding and extraction.
type StegoConfig struct {
	// FallbackName is used for extracted payloads stored without a name.
	FallbackName string `koanf:"fallback_name" yaml:"fallback_name" json:"fallback_name"`

	// ForceLossless rewrites lossy output extensions to .png before saving.
	ForceLossless bool `koanf:"force_lossless" yaml:"force_lossless" json:"force_lossless"`
}

// MetricsConfig configures the optional Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" yaml:"textfile" json:"textfile"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Stego: StegoConfig{
			FallbackName:  domain.DefaultName,
			ForceLossless: true,
		},
	}
}

// defaultMap flattens Default into koanf keys.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"log.level":            d.Log.Level,
		"log.format":           d.Log.Format,
		"output.format":        d.Output.Format,
		"stego.fallback_name":  d.Stego.FallbackName,
		"stego.force_lossless": d.Stego.ForceLossless,
		"metrics.textfile":     d.Metrics.Textfile,
	}
}

var (
	validLevels        = []string{"debug", "info", "warn", "error"}
	validLogFormats    = []string{"text", "json"}
	validOutputFormats = []string{"table", "json", "yaml"}
)

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if !oneOf(c.Log.Level, validLevels) {
		return invalid("log.level", c.Log.Level, validLevels)
	}
	if !oneOf(c.Log.Format, validLogFormats) {
		return invalid("log.format", c.Log.Format, validLogFormats)
	}
	if !oneOf(c.Output.Format, validOutputFormats) {
		return invalid("output.format", c.Output.Format, validOutputFormats)
	}
	if c.Stego.FallbackName == "" {
		return domain.ErrInvalidArgument.WithDetails("stego.fallback_name must not be empty")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}

func invalid(key, value string, allowed []string) error {
	return domain.ErrInvalidArgument.WithDetails(
		fmt.Sprintf("%s: %q is not one of %s", key, value, strings.Join(allowed, ", ")))
}
