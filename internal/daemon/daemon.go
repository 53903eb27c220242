// Package daemon drives the tracker: the polling loop that feeds window
// snapshots into the ledger, and the auto-save timer.
package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wintrack/internal/config"
	"wintrack/internal/idle"
	"wintrack/internal/ledger"
	"wintrack/internal/project"
	"wintrack/internal/winenum"
)

type Daemon struct {
	cfg    config.Config
	ledger *ledger.Ledger
	source winenum.Source
	prober idle.Prober
	filter project.Filter
	logger *slog.Logger
}

func New(cfg config.Config, l *ledger.Ledger, source winenum.Source, prober idle.Prober, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		cfg:    cfg,
		ledger: l,
		source: source,
		prober: prober,
		filter: project.NewFilter(cfg.TrackedPrograms, cfg.IgnoredPrograms),
		logger: logger,
	}
}

// Run polls until ctx is canceled, then flushes every remaining active
// session synchronously before returning. Nothing inside the loop terminates
// it: enumeration, probe, and persistence failures are logged and the next
// tick proceeds.
func (d *Daemon) Run(ctx context.Context) error {
	interval := time.Duration(d.cfg.CheckIntervalSec) * time.Second

	var wg sync.WaitGroup
	if d.cfg.AutoSaveIntervalSec > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.autoSaveLoop(ctx)
		}()
	}

	d.Tick(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			d.ledger.Flush(time.Now())
			d.logger.Info("tracker stopped, sessions flushed")
			return nil
		case now := <-ticker.C:
			d.Tick(now)
		}
	}
}

func (d *Daemon) autoSaveLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(d.cfg.AutoSaveIntervalSec) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.SaveNow(); err != nil {
				d.logger.Warn("auto-save failed", "error", err)
			}
		}
	}
}

// Tick runs one polling pass: enumerate windows, classify them, and hand the
// snapshot to the ledger.
func (d *Daemon) Tick(now time.Time) {
	windows, err := d.source.Open()
	if err != nil {
		d.logger.Warn("window enumeration failed, skipping tick", "error", err)
		return
	}

	open := make(map[string]string)
	for _, w := range windows {
		if !d.filter.Tracked(w.Process) {
			continue
		}
		open[project.Key(w.Title)] = w.Title
	}

	focusedKey := ""
	if fw, ok, err := d.source.Focused(); err != nil {
		d.logger.Warn("focused-window lookup failed", "error", err)
	} else if ok && d.filter.Tracked(fw.Process) {
		focusedKey = project.Key(fw.Title)
	}

	idleSec := 0.0
	if d.prober != nil {
		if v, err := d.prober.Seconds(); err != nil {
			d.logger.Warn("idle probe failed, assuming activity", "error", err)
		} else {
			idleSec = v
		}
	}

	d.ledger.Observe(open, focusedKey, idleSec, now)
}

// SaveNow snapshots all active sessions to disk. Used by the auto-save loop
// and by tray commands.
func (d *Daemon) SaveNow() error {
	return d.ledger.SaveAll(time.Now())
}
