package ledger

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"wintrack/internal/model"
)

// Store persists one project's full record history. The whole file is
// rewritten on every save so the summary header stays accurate and a
// marked in-place record can be overwritten.
type Store interface {
	SaveProject(key string, created time.Time, records []model.SessionRecord) error
}

// Ledger owns all per-project session state: the active-session set, the
// historical record sequences, and the manual-save markers that keep a
// still-open session in sync with its on-disk record.
//
// The polling loop, the auto-save timer, and tray commands all call into the
// same Ledger; every exported method takes the single mutex, so mutations are
// mutually exclusive across those call paths.
type Ledger struct {
	store         Store
	logger        *slog.Logger
	idleThreshold float64

	mu      sync.Mutex
	active  map[string]*model.ActiveSession
	records map[string][]model.SessionRecord
	markers map[string]int
	created map[string]time.Time
}

func New(store Store, idleThresholdSec int, history map[string]model.ProjectHistory, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		store:         store,
		logger:        logger,
		idleThreshold: float64(idleThresholdSec),
		active:        map[string]*model.ActiveSession{},
		records:       map[string][]model.SessionRecord{},
		markers:       map[string]int{},
		created:       map[string]time.Time{},
	}
	for key, h := range history {
		l.records[key] = append([]model.SessionRecord(nil), h.Records...)
		if !h.Meta.Created.IsZero() {
			l.created[key] = h.Meta.Created
		}
	}
	return l
}

// Observe processes one polling tick: open contains every currently visible
// tracked project (key -> latest raw window title), focusedKey is the project
// owning the OS foreground window ("" when none), idleSec is the system-wide
// seconds-since-last-input reading.
//
// Projects in open but not active are opened; active projects missing from
// open are closed and persisted; every remaining active session then runs
// idle and focus accounting.
func (l *Ledger) Observe(open map[string]string, focusedKey string, idleSec float64, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, title := range open {
		if s, ok := l.active[key]; ok {
			s.WindowTitle = title
			continue
		}
		l.active[key] = &model.ActiveSession{
			Start:       now,
			WindowTitle: title,
			LastSample:  now,
		}
	}

	for key := range l.active {
		if _, ok := open[key]; !ok {
			l.closeSession(key, now)
		}
	}

	for key, s := range l.active {
		l.accountIdle(s, idleSec)

		dt := int(now.Sub(s.LastSample).Seconds())
		if dt > 0 && key == focusedKey {
			s.FocusSec += dt
		}
		s.LastSample = now
	}
}

// accountIdle applies one idle-probe reading to a session. The probe reports
// continuous system-wide idle duration, so while the reading stays above the
// threshold the delta between consecutive readings is the increment; once it
// drops below, the anchor is discarded to avoid double counting after
// activity resumes.
func (l *Ledger) accountIdle(s *model.ActiveSession, idleSec float64) {
	if idleSec < l.idleThreshold {
		s.WasIdle = false
		s.IdleAnchor = 0
		return
	}
	if !s.WasIdle {
		s.WasIdle = true
		s.IdleAnchor = idleSec
		return
	}
	if d := int(idleSec - s.IdleAnchor); d > 0 {
		s.IdleSec += d
	}
	s.IdleAnchor = idleSec
}

// closeSession finalizes a session: with a manual-save marker present the
// marked record is overwritten in place (no duplicate), otherwise a new
// record is appended. The project is persisted and removed from the active
// set either way. Callers hold l.mu.
func (l *Ledger) closeSession(key string, now time.Time) {
	s, ok := l.active[key]
	if !ok {
		return
	}
	rec := snapshotRecord(s, now)

	if idx, ok := l.markers[key]; ok && idx >= 0 && idx < len(l.records[key]) {
		l.records[key][idx] = rec
		delete(l.markers, key)
	} else {
		l.records[key] = append(l.records[key], rec)
	}
	delete(l.active, key)

	if err := l.persist(key); err != nil {
		l.logger.Warn("persist on close failed", "project", key, "error", err)
	}
}

// SaveAll snapshots every active session to disk without closing it: the
// session keeps accumulating from its original start. The first save of a
// session appends a record and marks it; later saves overwrite the same
// record, so a session that is saved N times and then closed still ends up
// as exactly one record holding the true total duration.
func (l *Ledger) SaveAll(now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for key, s := range l.active {
		rec := snapshotRecord(s, now)
		if idx, ok := l.markers[key]; ok && idx >= 0 && idx < len(l.records[key]) {
			l.records[key][idx] = rec
		} else {
			l.records[key] = append(l.records[key], rec)
			l.markers[key] = len(l.records[key]) - 1
		}
		if err := l.persist(key); err != nil {
			l.logger.Warn("save failed", "project", key, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush closes every remaining active session. Called on shutdown so no
// session is lost on exit.
func (l *Ledger) Flush(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.active {
		l.closeSession(key, now)
	}
}

// Active returns a copy of the current active-session set.
func (l *Ledger) Active() map[string]model.ActiveSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]model.ActiveSession, len(l.active))
	for key, s := range l.active {
		out[key] = *s
	}
	return out
}

// Records returns a copy of a project's record history.
func (l *Ledger) Records(key string) []model.SessionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.SessionRecord(nil), l.records[key]...)
}

func (l *Ledger) persist(key string) error {
	if l.store == nil {
		return nil
	}
	created := l.created[key]
	if created.IsZero() {
		if recs := l.records[key]; len(recs) > 0 {
			created = recs[0].Start
		}
		l.created[key] = created
	}
	return l.store.SaveProject(key, created, l.records[key])
}

func snapshotRecord(s *model.ActiveSession, now time.Time) model.SessionRecord {
	duration := int(now.Sub(s.Start).Seconds())
	if duration < 0 {
		duration = 0
	}
	idle := s.IdleSec
	if idle > duration {
		idle = duration
	}
	focus := s.FocusSec
	if focus > duration {
		focus = duration
	}
	return model.SessionRecord{
		Start:       s.Start,
		End:         now,
		DurationSec: duration,
		IdleSec:     idle,
		FocusSec:    focus,
		ActiveSec:   duration - idle,
		WindowTitle: s.WindowTitle,
	}
}
