package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReindexCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the derived report index from the CSV logs",
		Long:  "The sqlite index under the log folder is derived data; reindex drops and repopulates it from the CSV logs. Useful after hand-editing or restoring log files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(app)
			if err != nil {
				return err
			}
			if err := store.RebuildIndex(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "index rebuilt")
			return nil
		},
	}
}
