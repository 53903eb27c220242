package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wintrack/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigInitCmd(app))
	cmd.AddCommand(newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a documented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(app.ConfigPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", app.ConfigPath)
				}
			}
			if err := config.WriteDefault(app.ConfigPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", app.ConfigPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, struct {
				CheckIntervalSec    int      `json:"checkIntervalSec"`
				IdleThresholdSec    int      `json:"idleThresholdSec"`
				AutoSaveIntervalSec int      `json:"autoSaveIntervalSec"`
				LogFolder           string   `json:"logFolder"`
				TrackedPrograms     []string `json:"trackedPrograms"`
				IgnoredPrograms     []string `json:"ignoredPrograms"`
			}{
				cfg.CheckIntervalSec, cfg.IdleThresholdSec, cfg.AutoSaveIntervalSec,
				cfg.LogFolder, cfg.TrackedPrograms, cfg.IgnoredPrograms,
			})
		},
	}
}
