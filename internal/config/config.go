// Package config holds the configuration of the catalog service.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	NATS       config.NATSConfig       `koanf:"nats"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())

	b.WriteString(c.GRPC.String())

	b.WriteString("\n--- Database ---\n")
	b.WriteString(fmt.Sprintf("  database.driver: %s\n", c.Database.Driver))
	b.WriteString(fmt.Sprintf("  database.url: %s\n", maskURL(c.Database.URL)))
	b.WriteString(fmt.Sprintf("  database.timeout: %s\n", c.Database.Timeout))
	b.WriteString(fmt.Sprintf("  database.migrate: %t\n", c.Database.Migrate))

	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.NATS.String())

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		scheme, _, found := strings.Cut(parts[0], "://")
		if found {
			return scheme + "://****@" + parts[1]
		}
		return "****@" + parts[1]
	}
	return "****"
}

// Validate checks every section and fills in defaults.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.GRPC,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Telemetry,
		&c.NATS,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
