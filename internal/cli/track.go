package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wintrack/internal/daemon"
	"wintrack/internal/idle"
	"wintrack/internal/ledger"
	"wintrack/internal/tray"
	"wintrack/internal/winenum"
)

func newTrackCmd(app *App) *cobra.Command {
	var noTray bool

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Run the tracking agent until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(app, noTray)
		},
	}
	cmd.Flags().BoolVar(&noTray, "no-tray", false, "Run headless without a tray icon")
	return cmd
}

func runTrack(app *App, noTray bool) error {
	logger := app.Logger()

	cfg, store, err := openStore(app)
	if err != nil {
		return err
	}
	if err := store.Ensure(); err != nil {
		return err
	}
	history, err := store.LoadAll()
	if err != nil {
		return err
	}
	logger.Info("loaded session history", "projects", len(history), "logFolder", cfg.LogFolder)

	source, err := winenum.New()
	if err != nil {
		return err
	}
	prober, err := idle.New()
	if err != nil {
		// Idle time degrades to zero; focus and duration still work.
		logger.Warn("idle probe unavailable, idle time will not be tracked", "error", err)
		prober = nil
	}

	led := ledger.New(store, cfg.IdleThresholdSec, history, logger)
	d := daemon.New(cfg, led, source, prober, logger)

	// The context is the single stop signal: tray Quit, SIGINT, and SIGTERM
	// all cancel it, and the daemon flushes before Run returns.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if noTray {
		return d.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	tray.Run(ctx, tray.Handlers{
		SaveNow:  d.SaveNow,
		OpenLogs: func() error { return openFolder(cfg.LogFolder) },
		Quit:     cancel,
	})

	cancel()
	err = <-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
