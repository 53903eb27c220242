package cli

import (
	"github.com/spf13/cobra"

	"wintrack/internal/tui"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Live terminal dashboard over the recorded logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(app)
			if err != nil {
				return err
			}
			return tui.Run(store)
		},
	}
}
