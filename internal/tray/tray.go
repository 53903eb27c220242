// Package tray puts the tracker in the system tray. It issues three commands
// into the core: manual save, open log folder, and graceful shutdown.
package tray

import (
	"context"
	"fmt"
	"time"

	"fyne.io/systray"
)

type Handlers struct {
	// SaveNow snapshots all open sessions to disk.
	SaveNow func() error
	// OpenLogs shows the log folder in the OS file browser. Read-only; it
	// never touches tracker state.
	OpenLogs func() error
	// Quit requests a graceful shutdown (sessions are flushed by the daemon).
	Quit func()
}

// Run blocks on the systray event loop. It returns when Quit is clicked or
// ctx is canceled.
func Run(ctx context.Context, h Handlers) {
	systray.Run(func() { onReady(ctx, h) }, nil)
}

func onReady(ctx context.Context, h Handlers) {
	systray.SetTitle("wintrack")
	systray.SetTooltip("wintrack: tracking window time")

	save := systray.AddMenuItem("Save now", "Write all open sessions to disk")
	open := systray.AddMenuItem("Open log folder", "Show the log folder in the file browser")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Flush open sessions and exit")

	go func() {
		for {
			select {
			case <-ctx.Done():
				systray.Quit()
				return
			case <-save.ClickedCh:
				if err := h.SaveNow(); err != nil {
					systray.SetTooltip("wintrack: save failed, see log")
					continue
				}
				systray.SetTooltip(fmt.Sprintf("wintrack: saved at %s", time.Now().Format("15:04:05")))
			case <-open.ClickedCh:
				_ = h.OpenLogs()
			case <-quit.ClickedCh:
				h.Quit()
				systray.Quit()
				return
			}
		}
	}()
}
