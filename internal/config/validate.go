package config

import (
	"fmt"
	"strings"

	"plexsweep/internal/policy"
	"plexsweep/internal/services"
)

// Validate ensures the configuration is usable. Policy patterns are compiled
// here so a malformed pattern aborts before any scanning begins.
func (c *Config) Validate() error {
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlex() error {
	if c.Plex.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/plexsweep/config.toml"
		}
		return services.Wrap(services.ErrValidation, "config", "plex.url",
			fmt.Sprintf("required. Set PLEX_URL env var or edit %s (create with 'plexsweep config init')", defaultPath), nil)
	}
	if !strings.HasPrefix(c.Plex.URL, "http://") && !strings.HasPrefix(c.Plex.URL, "https://") {
		return services.Wrap(services.ErrValidation, "config", "plex.url",
			fmt.Sprintf("must start with http:// or https://, got %q", c.Plex.URL), nil)
	}
	if c.Plex.Token == "" {
		return services.Wrap(services.ErrValidation, "config", "plex.token",
			"required. Set PLEX_TOKEN env var or edit the config file", nil)
	}
	if c.Plex.TimeoutSeconds <= 0 {
		return services.Wrap(services.ErrValidation, "config", "plex.timeout_seconds", "must be positive", nil)
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if _, err := policy.New(c.Cleanup.DeleteLabels, c.Cleanup.DeleteLabelPatterns); err != nil {
		return fmt.Errorf("cleanup label policy: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return services.Wrap(services.ErrValidation, "config", "logging.format",
			fmt.Sprintf("must be console or json, got %q", c.Logging.Format), nil)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return services.Wrap(services.ErrValidation, "config", "logging.level",
			fmt.Sprintf("must be debug, info, warn, or error, got %q", c.Logging.Level), nil)
	}
	return nil
}
