package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexsweep/internal/services"
)

func clearPlexEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PLEX_URL", "PLEX_TOKEN", "PLEX_DRY_RUN", "PLEX_NO_CONFIRM", "PLEX_DELETE_LABELS", "PLEX_DELETE_LABEL_PATTERNS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultsAreSafe(t *testing.T) {
	cfg := Default()
	if !cfg.Cleanup.DryRun {
		t.Fatal("dry_run must default to true")
	}
	if cfg.Cleanup.NoConfirm {
		t.Fatal("no_confirm must default to false")
	}
	if cfg.Plex.TimeoutSeconds <= 0 {
		t.Fatal("timeout must default to a positive value")
	}
}

func TestLoadParsesFile(t *testing.T) {
	clearPlexEnv(t)
	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400/"
token = "secret"

[cleanup]
dry_run = false
delete_labels = ["pinned"]
delete_label_patterns = ["auto-*"]
library = "Movies"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Plex.URL != "http://plex.local:32400" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.Plex.URL)
	}
	if cfg.Cleanup.DryRun {
		t.Fatal("dry_run=false should survive load")
	}
	if cfg.Cleanup.Library != "Movies" {
		t.Fatalf("library filter: got %q", cfg.Cleanup.Library)
	}
	if len(cfg.Cleanup.DeleteLabels) != 1 || cfg.Cleanup.DeleteLabels[0] != "pinned" {
		t.Fatalf("delete_labels: got %v", cfg.Cleanup.DeleteLabels)
	}
}

func TestEnvOverlayFillsConnection(t *testing.T) {
	clearPlexEnv(t)
	t.Setenv("PLEX_URL", "http://env.local:32400/")
	t.Setenv("PLEX_TOKEN", "env-token")
	path := writeConfig(t, "")

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Plex.URL != "http://env.local:32400" {
		t.Fatalf("env url: got %q", cfg.Plex.URL)
	}
	if cfg.Plex.Token != "env-token" {
		t.Fatalf("env token: got %q", cfg.Plex.Token)
	}
}

func TestEnvOverlayBooleansAndLabels(t *testing.T) {
	clearPlexEnv(t)
	t.Setenv("PLEX_URL", "http://env.local:32400")
	t.Setenv("PLEX_TOKEN", "tok")
	t.Setenv("PLEX_DRY_RUN", "false")
	t.Setenv("PLEX_NO_CONFIRM", "true")
	t.Setenv("PLEX_DELETE_LABELS", " pinned, keep ,")
	path := writeConfig(t, "")

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cleanup.DryRun {
		t.Fatal("PLEX_DRY_RUN=false should disable dry run")
	}
	if !cfg.Cleanup.NoConfirm {
		t.Fatal("PLEX_NO_CONFIRM=true should suppress prompts")
	}
	want := []string{"pinned", "keep"}
	if len(cfg.Cleanup.DeleteLabels) != len(want) {
		t.Fatalf("delete labels: got %v", cfg.Cleanup.DeleteLabels)
	}
	for i, label := range want {
		if cfg.Cleanup.DeleteLabels[i] != label {
			t.Fatalf("delete labels: got %v, want %v", cfg.Cleanup.DeleteLabels, want)
		}
	}
}

func TestValidateRejectsMissingConnection(t *testing.T) {
	clearPlexEnv(t)
	path := writeConfig(t, "")

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error without url/token")
	}
	if !strings.Contains(err.Error(), "plex.url") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !services.IsFatal(err) {
		t.Fatalf("config validation failures must classify as fatal: %v", err)
	}
}

func TestValidateRejectsBadScheme(t *testing.T) {
	clearPlexEnv(t)
	path := writeConfig(t, `
[plex]
url = "plex.local:32400"
token = "tok"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for missing scheme")
	}
}

func TestValidateRejectsMalformedPattern(t *testing.T) {
	clearPlexEnv(t)
	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400"
token = "tok"

[cleanup]
delete_label_patterns = [" "]
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for blank pattern")
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	clearPlexEnv(t)
	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400"
token = "tok"

[logging]
format = "logfmt"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestStatePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.StateDir = t.TempDir()
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if filepath.Dir(cfg.HistoryDBPath()) != cfg.Paths.StateDir {
		t.Fatalf("history db should live in state dir, got %q", cfg.HistoryDBPath())
	}
	if filepath.Dir(cfg.LockPath()) != cfg.Paths.StateDir {
		t.Fatalf("lock file should live in state dir, got %q", cfg.LockPath())
	}
}
