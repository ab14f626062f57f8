package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateCredentials reports whether API credentials are present. Commands
// that never reach the API (config init, uploads history) skip this check.
func (c *Config) ValidateCredentials() error {
	if c.API.AccessKey == "" || c.API.SecretKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("api.access_key and api.secret_key are required. Set TCLOUD_ACCESS_KEY/TCLOUD_SECRET_KEY or edit %s (create with 'tcloud config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if strings.ContainsAny(c.API.Host, "/ ") {
		return fmt.Errorf("api.host must be a bare hostname, got %q", c.API.Host)
	}
	switch c.API.Scheme {
	case "", "http", "https":
	default:
		return fmt.Errorf("api.scheme must be http or https, got %q", c.API.Scheme)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be between 1 and 65535, got %d", c.API.Port)
	}
	if c.API.TimeoutSeconds < 0 {
		return errors.New("api.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
