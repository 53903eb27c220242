package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wintrack/internal/logstore"
	"wintrack/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitThenShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "wintrack.conf")

	if _, err := execute(t, "--config", cfgPath, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "config", "init"); err == nil {
		t.Fatalf("config init must refuse to overwrite without --force")
	}
	if _, err := execute(t, "--config", cfgPath, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out, err := execute(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	var got struct {
		CheckIntervalSec int    `json:"checkIntervalSec"`
		LogFolder        string `json:"logFolder"`
		TrackedPrograms  []string `json:"trackedPrograms"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("config show output is not JSON: %v\n%s", err, out)
	}
	if got.CheckIntervalSec != 20 || got.LogFolder != "window_logs" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if len(got.TrackedPrograms) == 0 {
		t.Fatalf("default config should list example tracked programs")
	}
}

func seedLogs(t *testing.T) (cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	store := logstore.New(logDir, nil)
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	recs := []model.SessionRecord{{
		Start: start, End: start.Add(time.Hour),
		DurationSec: 3600, IdleSec: 300, FocusSec: 1200, ActiveSec: 3300,
		WindowTitle: "Design - Blender",
	}}
	if err := store.SaveProject("Design", start, recs); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	cfgPath = filepath.Join(dir, "wintrack.conf")
	body := "log_folder = " + logDir + "\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return cfgPath
}

func TestReportJSON(t *testing.T) {
	cfgPath := seedLogs(t)

	out, err := execute(t, "--config", cfgPath, "report", "--json")
	if err != nil {
		t.Fatalf("report --json: %v", err)
	}
	var sums []logstore.ProjectSummary
	if err := json.Unmarshal([]byte(out), &sums); err != nil {
		t.Fatalf("report output is not JSON: %v\n%s", err, out)
	}
	if len(sums) != 1 || sums[0].Project != "Design" || sums[0].DurationSec != 3600 {
		t.Fatalf("summaries: %+v", sums)
	}
}

func TestReportText(t *testing.T) {
	cfgPath := seedLogs(t)

	out, err := execute(t, "--config", cfgPath, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Design") || !strings.Contains(out, "PROJECT TIME SUMMARY") {
		t.Fatalf("text report:\n%s", out)
	}
}

func TestReportUnknownProject(t *testing.T) {
	cfgPath := seedLogs(t)
	if _, err := execute(t, "--config", cfgPath, "report", "--project", "Nope"); err == nil {
		t.Fatalf("expected an error for an unknown project")
	}
}

func TestLogsPath(t *testing.T) {
	cfgPath := seedLogs(t)
	out, err := execute(t, "--config", cfgPath, "logs", "path")
	if err != nil {
		t.Fatalf("logs path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "logs") {
		t.Fatalf("logs path output: %q", out)
	}
}
