// Package config loads, normalizes, and validates plexsweep configuration.
// Values come from a TOML file with environment variable overlays matching
// the PLEX_* variables the tool has always honored.
package config
