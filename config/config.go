// Package config loads the native server configuration from TOML files with
// environment variable overrides and per-environment overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/shravanasati/hellowasm/logging"
	"github.com/shravanasati/hellowasm/telemetry"
)

const (
	// BaseConfigFile is the default configuration file name.
	BaseConfigFile = "hellowasm.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "hellowasm.%s.toml"

	// EnvServiceEnv selects the overlay, e.g. "dev" loads hellowasm.dev.toml.
	EnvServiceEnv = "HELLOWASM_ENV"

	EnvLogLevel             = "HELLOWASM_LOG_LEVEL"
	EnvLogFormat            = "HELLOWASM_LOG_FORMAT"
	EnvTelemetryEnabled     = "HELLOWASM_TELEMETRY_ENABLED"
	EnvTelemetryEndpoint    = "HELLOWASM_TELEMETRY_ENDPOINT"
	EnvTelemetryServiceName = "HELLOWASM_TELEMETRY_SERVICE_NAME"
)

// Config represents the root configuration.
type Config struct {
	Server    ServerConfig     `toml:"server"`
	Upstream  UpstreamConfig   `toml:"upstream"`
	Logging   logging.Config   `toml:"logging"`
	Telemetry telemetry.Config `toml:"telemetry"`

	// set records which telemetry flags a parsed document named explicitly,
	// so an overlay can turn them off.
	set telemetryFlags
}

type telemetryFlags struct {
	Enabled  *bool `toml:"enabled"`
	Insecure *bool `toml:"insecure"`
}

// Default returns a finalized configuration built only from defaults. It
// reads neither files nor the environment.
func Default() *Config {
	cfg := &Config{}
	cfg.loadDefaults()
	return cfg
}

// Load reads the configuration file at path, applies the overlay selected by
// HELLOWASM_ENV, and finalizes the result. An empty path means BaseConfigFile.
// A missing base file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = BaseConfigFile
	}

	cfg, err := load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = &Config{}
	case err != nil:
		return nil, err
	}

	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		overlay, err := load(overlayPath)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlayPath, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a TOML document without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var flags struct {
		Telemetry telemetryFlags `toml:"telemetry"`
	}
	if err := toml.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.set = flags.Telemetry
	return &cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Upstream.validate(); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	if err := c.Logging.Level.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Logging.Format.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
// Telemetry flags named in a parsed overlay replace the base value, so
// `enabled = false` turns telemetry off.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Upstream.Merge(&overlay.Upstream)

	if overlay.Logging.Level != "" {
		c.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.Format != "" {
		c.Logging.Format = overlay.Logging.Format
	}

	c.Telemetry.Enabled = mergeFlag(c.Telemetry.Enabled, overlay.Telemetry.Enabled, overlay.set.Enabled)
	c.Telemetry.Insecure = mergeFlag(c.Telemetry.Insecure, overlay.Telemetry.Insecure, overlay.set.Insecure)
	if overlay.Telemetry.Endpoint != "" {
		c.Telemetry.Endpoint = overlay.Telemetry.Endpoint
	}
	if overlay.Telemetry.ServiceName != "" {
		c.Telemetry.ServiceName = overlay.Telemetry.ServiceName
	}
}

// mergeFlag returns the overlay value when the overlay document named the
// flag, and otherwise lets a true overlay value switch it on.
func mergeFlag(base, overlay bool, named *bool) bool {
	if named != nil {
		return *named
	}
	return base || overlay
}

func (c *Config) loadDefaults() {
	c.Server.loadDefaults()
	c.Upstream.loadDefaults()

	if c.Logging.Level == "" {
		c.Logging.Level = logging.LevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logging.FormatAuto
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = telemetry.DefaultEndpoint
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = telemetry.DefaultServiceName
	}
}

func (c *Config) loadEnv() {
	c.Server.loadEnv()
	c.Upstream.loadEnv()

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = logging.Level(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = logging.Format(v)
	}
	if v := os.Getenv(EnvTelemetryEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = b
		}
	}
	if v := os.Getenv(EnvTelemetryEndpoint); v != "" {
		c.Telemetry.Endpoint = v
	}
	if v := os.Getenv(EnvTelemetryServiceName); v != "" {
		c.Telemetry.ServiceName = v
	}
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}
