package model

import "time"

// Window is one top-level application window as reported by the enumerator.
type Window struct {
	Title   string
	Process string
}

// ActiveSession tracks a currently open project window.
//
// IdleAnchor holds the system idle-probe reading captured at the last
// transition into the idle state. The probe reports a continuous
// "seconds since last input" value, not per-tick deltas, so the delta
// between consecutive readings while idle persists is the correct
// increment for IdleSec.
type ActiveSession struct {
	Start       time.Time
	WindowTitle string

	IdleSec  int
	FocusSec int

	WasIdle    bool
	IdleAnchor float64
	LastSample time.Time
}

// SessionRecord is one persisted (closed or manually snapshotted) session.
//
// Invariants: ActiveSec == DurationSec - IdleSec, and
// 0 <= FocusSec <= DurationSec.
type SessionRecord struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationSec int       `json:"durationSec"`
	IdleSec     int       `json:"idleSec"`
	FocusSec    int       `json:"focusSec"`
	ActiveSec   int       `json:"activeSec"`
	WindowTitle string    `json:"windowTitle"`
}

// ProjectMeta caches per-project log file metadata. It is derived from the
// record history (recomputed on every save) and only loaded from the file
// header as a startup cache.
type ProjectMeta struct {
	Created     time.Time
	LastChanged time.Time
}

// ProjectHistory is a project's loaded record sequence plus its cached meta.
type ProjectHistory struct {
	Records []SessionRecord
	Meta    ProjectMeta
}

// Totals aggregates a record slice.
type Totals struct {
	Sessions    int
	DurationSec int
	IdleSec     int
	FocusSec    int
	ActiveSec   int
}

func Aggregate(records []SessionRecord) Totals {
	t := Totals{Sessions: len(records)}
	for _, r := range records {
		t.DurationSec += r.DurationSec
		t.IdleSec += r.IdleSec
		t.FocusSec += r.FocusSec
		t.ActiveSec += r.ActiveSec
	}
	return t
}
