package logstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// The sqlite index is a derived artifact: reporting queries run against it,
// but the CSV logs stay the source of truth. It can be deleted and rebuilt
// at any time.

// ProjectSummary is one project's aggregate across all recorded sessions.
type ProjectSummary struct {
	Project     string    `json:"project"`
	Sessions    int       `json:"sessions"`
	WorkDays    int       `json:"workDays"`
	DurationSec int       `json:"durationSec"`
	IdleSec     int       `json:"idleSec"`
	FocusSec    int       `json:"focusSec"`
	ActiveSec   int       `json:"activeSec"`
	FirstStart  time.Time `json:"firstStart"`
	LastEnd     time.Time `json:"lastEnd"`
}

func (s *Store) indexPath() string {
	return filepath.Join(s.Dir, "index.sqlite")
}

func (s *Store) openIndex(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.indexPath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS sessions (
		project TEXT NOT NULL,
		day TEXT NOT NULL,
		start_unix INTEGER NOT NULL,
		end_unix INTEGER NOT NULL,
		duration_sec INTEGER NOT NULL,
		idle_sec INTEGER NOT NULL,
		focus_sec INTEGER NOT NULL,
		active_sec INTEGER NOT NULL,
		window_title TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RebuildIndex repopulates the sqlite index from the CSV logs.
func (s *Store) RebuildIndex(ctx context.Context) error {
	history, err := s.LoadAll()
	if err != nil {
		return err
	}
	db, err := s.openIndex(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions;`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sessions
		(project, day, start_unix, end_unix, duration_sec, idle_sec, focus_sec, active_sec, window_title)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, h := range history {
		for _, r := range h.Records {
			if _, err := stmt.ExecContext(ctx,
				key, r.Start.Format("2006-01-02"),
				r.Start.Unix(), r.End.Unix(),
				r.DurationSec, r.IdleSec, r.FocusSec, r.ActiveSec,
				r.WindowTitle,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Summaries queries the index for per-project aggregates, largest total
// first. WorkDays counts distinct calendar days with at least one session.
func (s *Store) Summaries(ctx context.Context) ([]ProjectSummary, error) {
	db, err := s.openIndex(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT
			project,
			COUNT(*),
			COUNT(DISTINCT day),
			SUM(duration_sec), SUM(idle_sec), SUM(focus_sec), SUM(active_sec),
			MIN(start_unix), MAX(end_unix)
		FROM sessions
		GROUP BY project
		ORDER BY SUM(duration_sec) DESC, project ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectSummary
	for rows.Next() {
		var p ProjectSummary
		var first, last int64
		if err := rows.Scan(&p.Project, &p.Sessions, &p.WorkDays,
			&p.DurationSec, &p.IdleSec, &p.FocusSec, &p.ActiveSec,
			&first, &last); err != nil {
			return nil, err
		}
		p.FirstStart = time.Unix(first, 0)
		p.LastEnd = time.Unix(last, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}
