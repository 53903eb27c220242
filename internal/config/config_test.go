package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wintrack.conf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wintrack.conf")

	cfg, err := Load(path, discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default file was not created: %v", err)
	}
	for _, want := range []string{"check_interval", "[TRACKED_PROGRAMS]", "[IGNORED_PROGRAMS]"} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("default file missing %q:\n%s", want, raw)
		}
	}

	// The created file must round-trip back to the same defaults.
	cfg2, err := Load(path, discard())
	if err != nil {
		t.Fatalf("Load created file: %v", err)
	}
	if cfg2.CheckIntervalSec != DefaultCheckIntervalSec ||
		cfg2.IdleThresholdSec != DefaultIdleThresholdSec ||
		cfg2.AutoSaveIntervalSec != DefaultAutoSaveIntervalSec ||
		cfg2.LogFolder != DefaultLogFolder {
		t.Fatalf("created file does not parse to defaults: %+v", cfg2)
	}
}

func TestLoadParsesSections(t *testing.T) {
	path := writeTemp(t, `
# comment
check_interval = 30
idle_threshold = 120
auto_save_interval = 0
log_folder = my_logs

[TRACKED_PROGRAMS]
Blender.exe
archicad.exe

[IGNORED_PROGRAMS]
explorer.exe
`)
	cfg, err := Load(path, discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CheckIntervalSec != 30 || cfg.IdleThresholdSec != 120 {
		t.Fatalf("intervals: %+v", cfg)
	}
	if cfg.AutoSaveIntervalSec != 0 {
		t.Fatalf("auto_save_interval = 0 should disable auto-save, got %d", cfg.AutoSaveIntervalSec)
	}
	if cfg.LogFolder != "my_logs" {
		t.Fatalf("log_folder: %q", cfg.LogFolder)
	}
	if len(cfg.TrackedPrograms) != 2 || cfg.TrackedPrograms[0] != "blender.exe" {
		t.Fatalf("tracked programs not lowercased/collected: %v", cfg.TrackedPrograms)
	}
	if len(cfg.IgnoredPrograms) != 1 || cfg.IgnoredPrograms[0] != "explorer.exe" {
		t.Fatalf("ignored programs: %v", cfg.IgnoredPrograms)
	}
}

func TestLoadClampsAndDefaults(t *testing.T) {
	cases := []struct {
		name string
		body string
		get  func(Config) int
		want int
	}{
		{"below min", "check_interval = 1", func(c Config) int { return c.CheckIntervalSec }, 5},
		{"above max", "check_interval = 99999", func(c Config) int { return c.CheckIntervalSec }, 3600},
		{"non-numeric", "check_interval = soon", func(c Config) int { return c.CheckIntervalSec }, DefaultCheckIntervalSec},
		{"idle below min", "idle_threshold = 2", func(c Config) int { return c.IdleThresholdSec }, 5},
		{"autosave above max", "auto_save_interval = 100000", func(c Config) int { return c.AutoSaveIntervalSec }, 86400},
		{"autosave zero kept", "auto_save_interval = 0", func(c Config) int { return c.AutoSaveIntervalSec }, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeTemp(t, tc.body), discard())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := tc.get(cfg); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestLoadMalformedLinesAreNotFatal(t *testing.T) {
	path := writeTemp(t, `
this is not a key value pair
check_interval = 25
`)
	cfg, err := Load(path, discard())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CheckIntervalSec != 25 {
		t.Fatalf("valid line after malformed line was dropped: %+v", cfg)
	}
}
