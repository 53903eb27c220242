package cli

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
)

func newLogsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Work with the log folder",
	}
	cmd.AddCommand(newLogsOpenCmd(app))
	cmd.AddCommand(newLogsPathCmd(app))
	return cmd
}

func newLogsOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the log folder in the OS file browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := openStore(app)
			if err != nil {
				return err
			}
			if err := store.Ensure(); err != nil {
				return err
			}
			return openFolder(cfg.LogFolder)
		},
	}
}

func newLogsPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the log folder path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.LogFolder)
			return nil
		},
	}
}

// openFolder shows path in the platform file browser. Fire and forget: the
// browser process is detached and its exit status is not meaningful.
func openFolder(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.Command("explorer", path)
	case "darwin":
		c = exec.Command("open", path)
	default:
		c = exec.Command("xdg-open", path)
	}
	return c.Start()
}
