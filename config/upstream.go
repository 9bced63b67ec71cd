package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/docker/go-units"
	"github.com/shravanasati/hellowasm/upstream"
)

const (
	EnvUpstreamUsersURL    = "HELLOWASM_UPSTREAM_USERS_URL"
	EnvUpstreamMaxBodySize = "HELLOWASM_UPSTREAM_MAX_BODY_SIZE"
)

// UpstreamConfig configures the outbound fetch behind POST /users.
type UpstreamConfig struct {
	UsersURL    string `toml:"users_url"`
	MaxBodySize string `toml:"max_body_size"`
}

// MaxBodyBytes returns MaxBodySize in bytes.
func (c *UpstreamConfig) MaxBodyBytes() int64 {
	size, _ := units.FromHumanSize(c.MaxBodySize)
	return size
}

// Merge applies non-zero values from the overlay configuration.
func (c *UpstreamConfig) Merge(overlay *UpstreamConfig) {
	if overlay.UsersURL != "" {
		c.UsersURL = overlay.UsersURL
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
}

func (c *UpstreamConfig) loadDefaults() {
	if c.UsersURL == "" {
		c.UsersURL = upstream.DefaultUsersURL
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = units.HumanSize(float64(upstream.DefaultMaxBodySize))
	}
}

func (c *UpstreamConfig) loadEnv() {
	if v := os.Getenv(EnvUpstreamUsersURL); v != "" {
		c.UsersURL = v
	}
	if v := os.Getenv(EnvUpstreamMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
}

func (c *UpstreamConfig) validate() error {
	u, err := url.Parse(c.UsersURL)
	if err != nil {
		return fmt.Errorf("invalid users_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid users_url %q: scheme must be http or https", c.UsersURL)
	}
	if size, err := units.FromHumanSize(c.MaxBodySize); err != nil || size <= 0 {
		return fmt.Errorf("invalid max_body_size %q", c.MaxBodySize)
	}
	return nil
}
