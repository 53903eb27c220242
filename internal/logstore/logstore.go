package logstore

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wintrack/internal/model"
)

const (
	fileSuffix = "_log.csv"
	timeLayout = "2006-01-02 15:04:05"
)

var columns = []string{
	"session_start", "session_end", "session_duration_sec",
	"idle_time_sec", "focus_time_sec", "active_time_sec", "window_title",
}

// Store reads and writes per-project CSV log files under Dir.
//
// One file per project key (`<key>_log.csv`): a comment-prefixed summary
// header followed by a tabular body. The header is recomputed and the whole
// file rewritten on every save, via a temp file + rename so a failed write
// never leaves a partial log behind.
type Store struct {
	Dir    string
	Logger *slog.Logger
}

func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Dir: dir, Logger: logger}
}

func (s *Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// Path returns the log file path for a project key. Keys come out of the
// project resolver already filesystem-safe.
func (s *Store) Path(key string) string {
	return filepath.Join(s.Dir, key+fileSuffix)
}

// SaveProject rewrites a project's log file with a fresh summary header and
// the full record history.
func (s *Store) SaveProject(key string, created time.Time, records []model.SessionRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if created.IsZero() {
		created = records[0].Start
	}

	var buf bytes.Buffer
	writeHeader(&buf, created, time.Now(), records)

	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Start.Format(timeLayout),
			r.End.Format(timeLayout),
			strconv.Itoa(r.DurationSec),
			strconv.Itoa(r.IdleSec),
			strconv.Itoa(r.FocusSec),
			strconv.Itoa(r.ActiveSec),
			r.WindowTitle,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return atomicWriteFile(s.Dir, key+".*.tmp", s.Path(key), buf.Bytes(), 0o644)
}

func writeHeader(buf *bytes.Buffer, created, lastChanged time.Time, records []model.SessionRecord) {
	t := model.Aggregate(records)
	fmt.Fprintf(buf, "# Created: %s\n", created.Format(timeLayout))
	fmt.Fprintf(buf, "# Last changed: %s\n", lastChanged.Format(timeLayout))
	fmt.Fprintf(buf, "# Sessions: %d\n", t.Sessions)
	fmt.Fprintf(buf, "# Total time across all sessions (sec): %d\n", t.DurationSec)
	fmt.Fprintf(buf, "# Idle time (sec): %d (%s)\n", t.IdleSec, percent(t.IdleSec, t.DurationSec))
	fmt.Fprintf(buf, "# Focus time (sec): %d (%s)\n", t.FocusSec, percent(t.FocusSec, t.DurationSec))
	fmt.Fprintf(buf, "# Active time (sec): %d (%s)\n", t.ActiveSec, percent(t.ActiveSec, t.DurationSec))
	fmt.Fprintf(buf, "# Columns: %s\n", strings.Join(columns, ", "))
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

// LoadAll scans the log directory and parses every project log into its
// record history. Unparseable rows are skipped, missing trailing columns
// default to zero, and missing headers fall back to zero meta; a single bad
// file is logged and skipped rather than failing the whole load.
func (s *Store) LoadAll() (map[string]model.ProjectHistory, error) {
	out := map[string]model.ProjectHistory{}

	ents, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}

	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		key := strings.TrimSuffix(name, fileSuffix)
		h, err := s.loadFile(filepath.Join(s.Dir, name))
		if err != nil {
			s.Logger.Warn("skipping unreadable log file", "file", name, "error", err)
			continue
		}
		out[key] = h
	}
	return out, nil
}

func (s *Store) loadFile(path string) (model.ProjectHistory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ProjectHistory{}, err
	}

	var h model.ProjectHistory
	sc := bufio.NewScanner(bytes.NewReader(raw))
	var body bytes.Buffer
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			if v, ok := headerValue(line, "# Created:"); ok {
				h.Meta.Created = parseTimeOrZero(v)
			} else if v, ok := headerValue(line, "# Last changed:"); ok {
				h.Meta.LastChanged = parseTimeOrZero(v)
			}
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	r := csv.NewReader(&body)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return model.ProjectHistory{}, err
	}
	for _, row := range rows {
		if len(row) == 0 || row[0] == "session_start" {
			continue
		}
		rec, ok := parseRow(row)
		if !ok {
			continue
		}
		h.Records = append(h.Records, rec)
	}
	return h, nil
}

// parseRow accepts the current 7-column layout as well as legacy bodies:
// the original 4-column format (start, end, duration, title) and any
// truncated row missing trailing columns, which default to zero.
func parseRow(row []string) (model.SessionRecord, bool) {
	if len(row) < 3 {
		return model.SessionRecord{}, false
	}
	start, err1 := time.ParseInLocation(timeLayout, strings.TrimSpace(row[0]), time.Local)
	end, err2 := time.ParseInLocation(timeLayout, strings.TrimSpace(row[1]), time.Local)
	duration, err3 := strconv.Atoi(strings.TrimSpace(row[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return model.SessionRecord{}, false
	}

	rec := model.SessionRecord{Start: start, End: end, DurationSec: duration}
	if len(row) > 3 {
		if n, err := strconv.Atoi(strings.TrimSpace(row[3])); err == nil {
			rec.IdleSec = n
		} else {
			// Legacy 4-column rows carry the window title here.
			rec.WindowTitle = row[3]
		}
	}
	if len(row) > 4 && rec.WindowTitle == "" {
		if n, err := strconv.Atoi(strings.TrimSpace(row[4])); err == nil {
			rec.FocusSec = n
		} else {
			rec.WindowTitle = row[4]
		}
	}
	if len(row) > 6 {
		rec.WindowTitle = row[6]
	}
	// active_time_sec is derived; recompute instead of trusting the file.
	rec.ActiveSec = rec.DurationSec - rec.IdleSec
	if rec.ActiveSec < 0 {
		rec.ActiveSec = 0
		rec.IdleSec = rec.DurationSec
	}
	if rec.FocusSec > rec.DurationSec {
		rec.FocusSec = rec.DurationSec
	}
	return rec, true
}

func headerValue(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
}

func parseTimeOrZero(v string) time.Time {
	t, err := time.ParseInLocation(timeLayout, v, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
