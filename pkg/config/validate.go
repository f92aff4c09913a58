package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/logging"
)

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil {
			return fmt.Errorf("apiUrl %q is invalid: %w", c.APIURL, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("apiUrl %q must be an absolute http or https URL", c.APIURL)
		}
	}
	if c.Timeout < 0 || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %d is out of range (0-%d)", c.Timeout, MaxTimeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// Catalog returns the default operation catalog with the configured
// overrides applied.
func (c *Config) Catalog() (clinic.Catalog, error) {
	catalog := clinic.DefaultCatalog()
	for raw, op := range c.Operations {
		key, err := clinic.ParseOperationKey(raw)
		if err != nil {
			return nil, fmt.Errorf("operations: %w", err)
		}
		if err := catalog.Override(key, op); err != nil {
			return nil, fmt.Errorf("operations: %w", err)
		}
	}
	return catalog, nil
}

// LoggingConfig converts the log settings for logging.New.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.LogLevel != "" {
		cfg.Level = logging.ParseLevel(c.LogLevel)
	}
	if c.LogFormat != "" {
		cfg.Format = logging.ParseFormat(c.LogFormat)
	}
	return cfg
}
