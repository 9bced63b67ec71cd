package config

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

const (
	EnvServerAddress         = "HELLOWASM_SERVER_ADDRESS"
	EnvServerReadTimeout     = "HELLOWASM_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "HELLOWASM_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "HELLOWASM_SERVER_SHUTDOWN_TIMEOUT"
	EnvServerMaxHeaderSize   = "HELLOWASM_SERVER_MAX_HEADER_SIZE"
)

// ServerConfig configures the native host. Durations use time.ParseDuration
// syntax and an empty or "0" timeout means none.
type ServerConfig struct {
	Address         string `toml:"address"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	MaxHeaderSize   string `toml:"max_header_size"`
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return parseDuration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return parseDuration(c.WriteTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout)
}

// MaxHeaderBytes returns MaxHeaderSize in bytes, e.g. "1MB" or "64KiB".
func (c *ServerConfig) MaxHeaderBytes() int {
	size, _ := units.FromHumanSize(c.MaxHeaderSize)
	return int(size)
}

// Merge applies non-zero values from the overlay configuration.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Address != "" {
		c.Address = overlay.Address
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.MaxHeaderSize != "" {
		c.MaxHeaderSize = overlay.MaxHeaderSize
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Address == "" {
		c.Address = ":42069"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "0s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "0s"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
	if c.MaxHeaderSize == "" {
		c.MaxHeaderSize = "1MB"
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerAddress); v != "" {
		c.Address = v
	}
	if v := os.Getenv(EnvServerReadTimeout); v != "" {
		c.ReadTimeout = v
	}
	if v := os.Getenv(EnvServerWriteTimeout); v != "" {
		c.WriteTimeout = v
	}
	if v := os.Getenv(EnvServerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServerMaxHeaderSize); v != "" {
		c.MaxHeaderSize = v
	}
}

func (c *ServerConfig) validate() error {
	for name, v := range map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid %s: negative duration %s", name, v)
		}
	}
	if size, err := units.FromHumanSize(c.MaxHeaderSize); err != nil || size <= 0 {
		return fmt.Errorf("invalid max_header_size %q", c.MaxHeaderSize)
	}
	return nil
}

func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
