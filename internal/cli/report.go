package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"wintrack/internal/logstore"
	"wintrack/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		jsonOut  bool
		markdown bool
		project  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recorded time per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(app)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := store.RebuildIndex(ctx); err != nil {
				return err
			}
			sums, err := store.Summaries(ctx)
			if err != nil {
				return err
			}
			if project != "" {
				sums = filterProject(sums, project)
				if len(sums) == 0 {
					return fmt.Errorf("no log found for project %q", project)
				}
			}

			switch {
			case jsonOut:
				return writeOut(cmd, app, sums)
			case markdown:
				md := report.Markdown(sums)
				r, err := glamour.NewTermRenderer(
					glamour.WithStandardStyle("dark"),
					glamour.WithWordWrap(100),
				)
				if err != nil {
					// Fall back to raw markdown on terminals glamour
					// cannot set up.
					fmt.Fprint(cmd.OutOrStdout(), md)
					return nil
				}
				out, err := r.Render(md)
				if err != nil {
					fmt.Fprint(cmd.OutOrStdout(), md)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			default:
				report.RenderText(cmd.OutOrStdout(), sums)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the summary as markdown")
	cmd.Flags().StringVar(&project, "project", "", "Limit the report to one project key")
	return cmd
}

func filterProject(sums []logstore.ProjectSummary, project string) []logstore.ProjectSummary {
	out := sums[:0]
	for _, s := range sums {
		if s.Project == project {
			out = append(out, s)
		}
	}
	return out
}
