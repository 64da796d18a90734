package config

import (
	"fmt"
	"strconv"
	"time"
)

const defaultMaxHeaderBytes = 1 << 20

// HTTPConfig configures the REST API listener.
type HTTPConfig struct {
	Port           int `koanf:"port"`
	MaxHeaderBytes int `koanf:"maxHeaderBytes"`
	Timeout        struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readHeader"`
	} `koanf:"timeout"`
}

func (c *HTTPConfig) String() string {
	return newSection("HTTP Server").
		add("port", c.Port).
		add("maxHeaderBytes", c.MaxHeaderBytes).
		add("timeout.read", c.Timeout.Read).
		add("timeout.write", c.Timeout.Write).
		add("timeout.idle", c.Timeout.Idle).
		add("timeout.readHeader", c.Timeout.ReadHeader).
		String()
}

func (c *HTTPConfig) Validate() error {
	if !validPort(c.Port) {
		return fmt.Errorf("invalid HTTP server port: %d", c.Port)
	}
	switch {
	case c.MaxHeaderBytes < 0:
		return fmt.Errorf("invalid HTTP server max header bytes: %d", c.MaxHeaderBytes)
	case c.MaxHeaderBytes == 0:
		c.MaxHeaderBytes = defaultMaxHeaderBytes
	}
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"read", c.Timeout.Read},
		{"write", c.Timeout.Write},
		{"idle", c.Timeout.Idle},
		{"read header", c.Timeout.ReadHeader},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("invalid HTTP server %s timeout: %v", t.name, t.value)
		}
	}
	return nil
}

// GrpcServerConfig configures the gRPC API listener.
type GrpcServerConfig struct {
	Port              string `koanf:"port"`
	ReflectionEnabled bool   `koanf:"reflection"`
}

func (c *GrpcServerConfig) String() string {
	return newSection("gRPC Server").
		add("grpc.port", c.Port).
		add("grpc.reflection", c.ReflectionEnabled).
		String()
}

func (c *GrpcServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("gRPC port is not configured")
	}
	if port, err := strconv.Atoi(c.Port); err != nil || !validPort(port) {
		return fmt.Errorf("invalid gRPC port: %s", c.Port)
	}
	return nil
}
