package config

import (
	"fmt"
	"log"
	"net"
	"strings"
	"time"
)

const defaultShutdownTimeout = 15 * time.Second

type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) String() string {
	return newSection("Log").add("level", c.Level).String()
}

func (c *LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level: %q", c.Level)
	}
}

// PProfConfig exposes net/http/pprof on a separate listener.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) String() string {
	return newSection("PProf").add("enabled", c.Enabled).add("address", c.Addr).String()
}

func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("pprof is enabled but address is not configured")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid pprof address %q: %w", c.Addr, err)
	}
	return nil
}

type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return newSection("Shutdown").add("timeout", c.Timeout).String()
}

func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout < 0:
		return fmt.Errorf("shutdown timeout must not be negative: %s", c.Timeout)
	case c.Timeout == 0:
		log.Println("Using default value for shutdown timeout")
		c.Timeout = defaultShutdownTimeout
	}
	return nil
}

// TelemetryConfig enables trace export over OTLP/HTTP.
type TelemetryConfig struct {
	Enabled bool `koanf:"enabled"`
	Traces  struct {
		OtlpHttp struct {
			Endpoint string        `koanf:"endpoint"`
			Insecure bool          `koanf:"insecure"`
			Timeout  time.Duration `koanf:"timeout"`
		} `koanf:"otlphttp"`
	} `koanf:"traces"`
}

func (c *TelemetryConfig) String() string {
	exporter := c.Traces.OtlpHttp
	return newSection("Telemetry").
		add("enabled", c.Enabled).
		add("traces.otlphttp.endpoint", exporter.Endpoint).
		add("traces.otlphttp.insecure", exporter.Insecure).
		add("traces.otlphttp.timeout", exporter.Timeout).
		String()
}

func (c *TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Traces.OtlpHttp.Endpoint == "" {
		return fmt.Errorf("OTel endpoint is not configured")
	}
	if c.Traces.OtlpHttp.Timeout <= 0 {
		return fmt.Errorf("telemetry timeout must be greater than 0")
	}
	return nil
}
