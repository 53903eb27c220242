package config

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the tracker configuration, read from a plain-text file.
//
// The file format is intentionally simple: top-level `key = value` pairs,
// `#` comments, and two named list sections ([TRACKED_PROGRAMS] and
// [IGNORED_PROGRAMS]) with one lowercase executable name per line.
type Config struct {
	CheckIntervalSec    int
	IdleThresholdSec    int
	AutoSaveIntervalSec int // 0 disables auto-save
	LogFolder           string

	TrackedPrograms []string
	IgnoredPrograms []string
}

const (
	DefaultCheckIntervalSec    = 20
	DefaultIdleThresholdSec    = 300
	DefaultAutoSaveIntervalSec = 1800
	DefaultLogFolder           = "window_logs"

	// DefaultFileName is the config file looked up in the working directory
	// when --config is not given.
	DefaultFileName = "wintrack.conf"
)

func Default() Config {
	return Config{
		CheckIntervalSec:    DefaultCheckIntervalSec,
		IdleThresholdSec:    DefaultIdleThresholdSec,
		AutoSaveIntervalSec: DefaultAutoSaveIntervalSec,
		LogFolder:           DefaultLogFolder,
	}
}

// Load reads the config file at path. A missing file is not an error: it is
// created with documented defaults and the defaults are returned. Malformed
// or out-of-range values fall back to defaults (clamped where that makes
// sense) with a warning; nothing in here is ever fatal to the tracker.
func Load(path string, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := WriteDefault(path); werr != nil {
				return Default(), fmt.Errorf("create default config: %w", werr)
			}
			logger.Info("created default config file", "path", path)
			return Default(), nil
		}
		return Default(), err
	}
	defer f.Close()

	cfg := Default()
	section := ""
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToUpper(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}
		switch section {
		case "":
			key, val, ok := strings.Cut(line, "=")
			if !ok {
				logger.Warn("ignoring malformed config line", "line", line)
				continue
			}
			applyKeyValue(&cfg, strings.TrimSpace(key), strings.TrimSpace(val), logger)
		case "TRACKED_PROGRAMS":
			cfg.TrackedPrograms = append(cfg.TrackedPrograms, strings.ToLower(line))
		case "IGNORED_PROGRAMS":
			cfg.IgnoredPrograms = append(cfg.IgnoredPrograms, strings.ToLower(line))
		default:
			logger.Warn("ignoring line in unknown config section", "section", section, "line", line)
		}
	}
	if err := sc.Err(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func applyKeyValue(cfg *Config, key, val string, logger *slog.Logger) {
	switch strings.ToLower(key) {
	case "check_interval":
		cfg.CheckIntervalSec = intInRange(key, val, 5, 3600, DefaultCheckIntervalSec, logger)
	case "idle_threshold":
		cfg.IdleThresholdSec = intInRange(key, val, 5, 3600, DefaultIdleThresholdSec, logger)
	case "auto_save_interval":
		n, err := strconv.Atoi(val)
		if err != nil {
			logger.Warn("non-numeric config value, using default", "key", key, "value", val, "default", DefaultAutoSaveIntervalSec)
			cfg.AutoSaveIntervalSec = DefaultAutoSaveIntervalSec
			return
		}
		// 0 is a valid "disabled" setting; anything else is clamped to [1, 86400].
		if n != 0 {
			n = clamp(key, n, 1, 86400, logger)
		}
		cfg.AutoSaveIntervalSec = n
	case "log_folder":
		if val == "" {
			logger.Warn("empty log_folder, using default", "default", DefaultLogFolder)
			return
		}
		cfg.LogFolder = val
	default:
		logger.Warn("unknown config key", "key", key)
	}
}

func intInRange(key, val string, min, max, def int, logger *slog.Logger) int {
	n, err := strconv.Atoi(val)
	if err != nil {
		logger.Warn("non-numeric config value, using default", "key", key, "value", val, "default", def)
		return def
	}
	return clamp(key, n, min, max, logger)
}

func clamp(key string, n, min, max int, logger *slog.Logger) int {
	if n < min {
		logger.Warn("config value below range, clamping", "key", key, "value", n, "min", min)
		return min
	}
	if n > max {
		logger.Warn("config value above range, clamping", "key", key, "value", n, "max", max)
		return max
	}
	return n
}

// WriteDefault writes a documented default config file to path.
func WriteDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(defaultFileBody), 0o644)
}

const defaultFileBody = `# wintrack configuration
#
# check_interval      how often open windows are polled, in seconds (5-3600)
# idle_threshold      seconds without input before time counts as idle (5-3600)
# auto_save_interval  seconds between automatic saves of open sessions
#                     (1-86400, or 0 to disable)
# log_folder          directory where per-project CSV logs are written

check_interval = 20
idle_threshold = 300
auto_save_interval = 1800
log_folder = window_logs

# Executable names are matched case-insensitively, one per line.
# A name listed under [IGNORED_PROGRAMS] is never tracked, even if it also
# appears under [TRACKED_PROGRAMS].

[TRACKED_PROGRAMS]
blender.exe
archicad.exe
revit.exe
acad.exe
sketchup.exe

[IGNORED_PROGRAMS]
explorer.exe
`
