package config

const (
	defaultStateDir       = "~/.local/share/plexsweep"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultPlexTimeout    = 15
	defaultHistoryEnabled = true
)

// Default returns a Config populated with repository defaults. Dry-run stays
// on until the operator explicitly turns it off.
func Default() Config {
	return Config{
		Plex: Plex{
			TimeoutSeconds: defaultPlexTimeout,
		},
		Cleanup: Cleanup{
			DryRun: true,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
	}
}
