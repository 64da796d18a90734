package config

import (
	"fmt"
	"strings"
	"time"
)

// Product store drivers.
const (
	DriverPgx    = "pgx"
	DriverGorm   = "gorm"
	DriverMemory = "memory"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultStream         = "PRODUCTS"
)

// DatabaseConfig selects and connects the product store.
type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Driver  string        `koanf:"driver"`
	Migrate bool          `koanf:"migrate"`
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "":
		c.Driver = DriverPgx
	case DriverPgx, DriverGorm:
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Driver)
	}
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !strings.HasPrefix(c.URL, "postgres://") && !strings.HasPrefix(c.URL, "postgresql://") {
		return fmt.Errorf("database URL must start with 'postgres://': %s", c.URL)
	}
	switch {
	case c.Timeout < 0:
		return fmt.Errorf("database connect timeout must not be negative: %s", c.Timeout)
	case c.Timeout == 0:
		c.Timeout = defaultConnectTimeout
	}
	return nil
}

// NATSConfig configures publication of product change events.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url"`
	Stream  string        `koanf:"stream"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *NATSConfig) String() string {
	return newSection("NATS").
		add("enabled", c.Enabled).
		add("url", c.Url).
		add("stream", c.Stream).
		add("timeout", c.Timeout).
		String()
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Url == "" {
		return fmt.Errorf("NATS URL is not configured")
	}
	if c.Stream == "" {
		c.Stream = defaultStream
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultConnectTimeout
	}
	return nil
}
