package config

import (
	"time"
)

// Backend base URLs used when no explicit URL is configured.
const (
	DefaultDockerURL = "http://localhost:8080/soap"
	DefaultLocalURL  = "http://localhost:8081/soap"
)

// DefaultTimeout is the default HTTP timeout in seconds.
const DefaultTimeout = 30

// MaxTimeout is the largest accepted timeout in seconds.
const MaxTimeout = 3600

// Default log settings.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}
	for _, key := range []string{"apiUrl", "docker", "timeout", "logLevel", "logFormat", "tracing"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// BaseURL resolves the backend base URL: an explicit APIURL, else the
// Docker default when Docker is set, else the local default.
func (c *Config) BaseURL() string {
	switch {
	case c.APIURL != "":
		return c.APIURL
	case c.Docker:
		return DefaultDockerURL
	default:
		return DefaultLocalURL
	}
}

// TimeoutDuration returns Timeout as a duration, falling back to
// DefaultTimeout when unset.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}
