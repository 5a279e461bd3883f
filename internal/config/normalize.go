package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlex()
	c.normalizeCleanup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlex() {
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	if c.Plex.URL == "" {
		if value, ok := os.LookupEnv("PLEX_URL"); ok {
			c.Plex.URL = strings.TrimRight(strings.TrimSpace(value), "/")
		}
	}
	if c.Plex.Token == "" {
		if value, ok := os.LookupEnv("PLEX_TOKEN"); ok {
			c.Plex.Token = strings.TrimSpace(value)
		}
	}
	if c.Plex.TimeoutSeconds == 0 {
		c.Plex.TimeoutSeconds = defaultPlexTimeout
	}
}

// normalizeCleanup applies the PLEX_* environment overrides the original
// deployment relied on. Boolean env vars win over the file when present;
// label lists only fill in when the file leaves them empty.
func (c *Config) normalizeCleanup() {
	if value, ok := os.LookupEnv("PLEX_DRY_RUN"); ok {
		c.Cleanup.DryRun = !strings.EqualFold(strings.TrimSpace(value), "false")
	}
	if value, ok := os.LookupEnv("PLEX_NO_CONFIRM"); ok {
		c.Cleanup.NoConfirm = strings.EqualFold(strings.TrimSpace(value), "true")
	}
	if len(c.Cleanup.DeleteLabels) == 0 {
		c.Cleanup.DeleteLabels = parseLabelList(os.Getenv("PLEX_DELETE_LABELS"))
	}
	if len(c.Cleanup.DeleteLabelPatterns) == 0 {
		c.Cleanup.DeleteLabelPatterns = parseLabelList(os.Getenv("PLEX_DELETE_LABEL_PATTERNS"))
	}
	c.Cleanup.Library = strings.TrimSpace(c.Cleanup.Library)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// parseLabelList splits a comma-separated label string, dropping empty entries.
func parseLabelList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			labels = append(labels, part)
		}
	}
	return labels
}
