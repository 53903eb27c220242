package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wintrack/internal/config"
	"wintrack/internal/format"
	"wintrack/internal/logstore"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
	Verbose    bool

	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "wintrack",
		Short:        "Track time spent in application windows, per project",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Run the tracking agent (tray icon + background polling)
  wintrack

  # Run headless, e.g. as a service
  wintrack track --no-tray

  # Summarize recorded time
  wintrack report
  wintrack report --markdown

  # Watch totals update live
  wintrack dashboard
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => run the agent.
			if len(args) == 0 {
				return runTrack(app, false)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("WINTRACK_CONFIG", config.DefaultFileName), "Path to the config file")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newTrackCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newLogsCmd(app))
	cmd.AddCommand(newReindexCmd(app))

	return cmd
}

func (app *App) Logger() *slog.Logger {
	if app.logger != nil {
		return app.logger
	}
	level := slog.LevelInfo
	if app.Verbose {
		level = slog.LevelDebug
	}
	app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return app.logger
}

// loadConfig reads the effective config; a missing file is created with
// defaults, so this only fails on real I/O problems.
func loadConfig(app *App) (config.Config, error) {
	return config.Load(app.ConfigPath, app.Logger())
}

func openStore(app *App) (config.Config, *logstore.Store, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logstore.New(cfg.LogFolder, app.Logger()), nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
