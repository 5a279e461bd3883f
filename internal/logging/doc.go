// Package logging configures the slog loggers used across plexsweep. It
// provides a console handler for interactive runs and a JSON handler for
// machine-readable output, plus small attr helpers shared by every component.
package logging
