package report

import (
	"strings"
	"testing"
	"time"

	"wintrack/internal/logstore"
)

func sample() []logstore.ProjectSummary {
	return []logstore.ProjectSummary{
		{
			Project:  "Design A",
			Sessions: 4, WorkDays: 2,
			DurationSec: 90000, IdleSec: 3600, FocusSec: 40000, ActiveSec: 86400,
			FirstStart: time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local),
			LastEnd:    time.Date(2026, 3, 2, 17, 30, 0, 0, time.Local),
		},
	}
}

func TestHumanDuration(t *testing.T) {
	cases := []struct {
		sec  int
		want string
	}{
		{0, "0s"},
		{59, "59s"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
		{90000, "1d 1h 0m"},
	}
	for _, tc := range cases {
		if got := HumanDuration(tc.sec); got != tc.want {
			t.Fatalf("HumanDuration(%d): expected %q, got %q", tc.sec, tc.want, got)
		}
	}
}

func TestRenderText(t *testing.T) {
	var b strings.Builder
	RenderText(&b, sample())
	out := b.String()
	for _, want := range []string{
		"Design A",
		"Total time: 1d 1h 0m",
		"Work days: 2   Sessions: 4",
		"Last active: 2026-03-02 17:30",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextEmpty(t *testing.T) {
	var b strings.Builder
	RenderText(&b, nil)
	if !strings.Contains(b.String(), "No project logs") {
		t.Fatalf("empty report: %q", b.String())
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	sums := sample()
	sums[0].Project = "A|B"
	md := Markdown(sums)
	if !strings.Contains(md, `A\|B`) {
		t.Fatalf("pipe not escaped:\n%s", md)
	}
	if !strings.Contains(md, "| Project | Total |") {
		t.Fatalf("markdown table header missing:\n%s", md)
	}
}
