package logstore

import (
	"context"
	"testing"
	"time"
)

func TestRebuildIndexAndSummaries(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveProject("Design", base, sampleRecords()); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	other := sampleRecords()[:1]
	other[0].Start = base.AddDate(0, 0, 1)
	other[0].End = other[0].Start.Add(time.Hour)
	if err := s.SaveProject("Plan", other[0].Start, other); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	if err := s.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	sums, err := s.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(sums))
	}

	// Largest total first.
	if sums[0].Project != "Design" || sums[1].Project != "Plan" {
		t.Fatalf("order: %q, %q", sums[0].Project, sums[1].Project)
	}
	d := sums[0]
	if d.Sessions != 2 || d.DurationSec != 7200 || d.IdleSec != 600 || d.FocusSec != 5400 {
		t.Fatalf("Design summary: %+v", d)
	}
	if d.WorkDays != 1 {
		t.Fatalf("Design work days: %d", d.WorkDays)
	}
	if !d.FirstStart.Equal(base) {
		t.Fatalf("first start: %v", d.FirstStart)
	}
}

func TestRebuildIndexIsRepeatable(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveProject("Design", base, sampleRecords()); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.RebuildIndex(ctx); err != nil {
			t.Fatalf("RebuildIndex #%d: %v", i, err)
		}
	}
	sums, err := s.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(sums) != 1 || sums[0].Sessions != 2 {
		t.Fatalf("rebuild duplicated rows: %+v", sums)
	}
}
