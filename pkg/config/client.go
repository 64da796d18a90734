package config

import (
	"fmt"
	"time"
)

// GrpcClientConfig configures a client of the catalog gRPC service.
type GrpcClientConfig struct {
	Addr       string           `koanf:"addr"`
	Timeout    time.Duration    `koanf:"timeout"`
	Resilience ResilienceConfig `koanf:"resilience"`
}

func (c *GrpcClientConfig) String() string {
	return newSection("gRPC Client").
		add("addr", c.Addr).
		add("timeout", c.Timeout).
		String() + c.Resilience.String()
}

func (c *GrpcClientConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("gRPC address is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("gRPC timeout is not configured")
	}
	return c.Resilience.Validate()
}

type ResilienceConfig struct {
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

// RetryConfig bounds the retries of idempotent catalog calls.
type RetryConfig struct {
	MaxAttempts    uint          `koanf:"maxattempts"`
	InitialBackoff time.Duration `koanf:"initialbackoff"`
}

// CircuitBreakerConfig controls when the catalog client stops calling a failing server.
type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
	HalfOpenRequests    uint32        `koanf:"halfopenrequests"`
}

func (c *ResilienceConfig) String() string {
	return newSection("Resilience").
		add("retry.maxattempts", c.Retry.MaxAttempts).
		add("retry.initialbackoff", c.Retry.InitialBackoff).
		add("circuitbreaker.consecutivefailures", c.CircuitBreaker.ConsecutiveFailures).
		add("circuitbreaker.errorratepercent", c.CircuitBreaker.ErrorRatePercent).
		add("circuitbreaker.opentimeout", c.CircuitBreaker.OpenTimeout).
		add("circuitbreaker.halfopenrequests", c.CircuitBreaker.HalfOpenRequests).
		String()
}

func (c *ResilienceConfig) Validate() error {
	switch {
	case c.Retry.MaxAttempts == 0:
		return fmt.Errorf("retry.max_attempts must be greater than 0")
	case c.Retry.InitialBackoff <= 0:
		return fmt.Errorf("retry.initial_backoff must be greater than 0")
	case c.CircuitBreaker.ConsecutiveFailures == 0:
		return fmt.Errorf("circuit_breaker.consecutive_failures must be greater than 0")
	case c.CircuitBreaker.ErrorRatePercent < 0 || c.CircuitBreaker.ErrorRatePercent > 100:
		return fmt.Errorf("circuit_breaker.error_rate_percent must be between 0 and 100")
	case c.CircuitBreaker.OpenTimeout <= 0:
		return fmt.Errorf("circuit_breaker.open_timeout must be greater than 0")
	}
	if c.CircuitBreaker.HalfOpenRequests == 0 {
		c.CircuitBreaker.HalfOpenRequests = 1
	}
	return nil
}
