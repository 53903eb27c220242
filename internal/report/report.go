// Package report renders per-project aggregates for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"wintrack/internal/logstore"
)

// RenderText writes a plain-text summary, largest total first.
func RenderText(w io.Writer, sums []logstore.ProjectSummary) {
	if len(sums) == 0 {
		fmt.Fprintln(w, "No project logs found yet.")
		return
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "PROJECT TIME SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, s := range sums {
		fmt.Fprintf(w, "\n%s\n", s.Project)
		fmt.Fprintf(w, "   Total time: %s\n", HumanDuration(s.DurationSec))
		fmt.Fprintf(w, "   Active: %s (%s)   Idle: %s (%s)   Focused: %s (%s)\n",
			HumanDuration(s.ActiveSec), percent(s.ActiveSec, s.DurationSec),
			HumanDuration(s.IdleSec), percent(s.IdleSec, s.DurationSec),
			HumanDuration(s.FocusSec), percent(s.FocusSec, s.DurationSec))
		fmt.Fprintf(w, "   Work days: %d   Sessions: %d\n", s.WorkDays, s.Sessions)
		fmt.Fprintf(w, "   First seen: %s   Last active: %s\n",
			s.FirstStart.Format("2006-01-02"), s.LastEnd.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

// Markdown renders the same summary as a markdown document, suitable for
// terminal rendering or pasting into notes.
func Markdown(sums []logstore.ProjectSummary) string {
	var b strings.Builder
	b.WriteString("# Project time summary\n\n")
	if len(sums) == 0 {
		b.WriteString("No project logs found yet.\n")
		return b.String()
	}
	b.WriteString("| Project | Total | Active | Idle | Focused | Days | Sessions |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, s := range sums {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d | %d |\n",
			escapePipes(s.Project),
			HumanDuration(s.DurationSec),
			HumanDuration(s.ActiveSec),
			HumanDuration(s.IdleSec),
			HumanDuration(s.FocusSec),
			s.WorkDays, s.Sessions)
	}
	return b.String()
}

// HumanDuration formats whole seconds as "2d 3h 14m" style text.
func HumanDuration(sec int) string {
	if sec < 60 {
		return fmt.Sprintf("%ds", sec)
	}
	d := sec / 86400
	h := sec % 86400 / 3600
	m := sec % 3600 / 60
	switch {
	case d > 0:
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(whole)*100)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
