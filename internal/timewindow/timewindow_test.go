package timewindow

import (
	"testing"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

func TestWeekWindowMondayAligned(t *testing.T) {
	// 2026-08-19 is a Wednesday.
	anchor := time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC)
	w := Of(model.WindowWeek, anchor, time.UTC)

	wantStart := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC) // Monday
	wantEnd := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, w.Start)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("expected end %v, got %v", wantEnd, w.End)
	}
}

func TestWeekWindowOnMonday(t *testing.T) {
	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	w := Of(model.WindowWeek, monday, time.UTC)
	if !w.Start.Equal(monday) {
		t.Errorf("a Monday should start its own week, got %v", w.Start)
	}
}

func TestWeekWindowOnSunday(t *testing.T) {
	sunday := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	w := Of(model.WindowWeek, sunday, time.UTC)
	wantStart := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Sunday belongs to the preceding Monday's week, got %v", w.Start)
	}
}

func TestMonthAndYearWindows(t *testing.T) {
	anchor := time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC)

	m := Of(model.WindowMonth, anchor, time.UTC)
	if !m.Start.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month start: %v", m.Start)
	}
	if !m.End.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month end: %v", m.End)
	}

	y := Of(model.WindowYear, anchor, time.UTC)
	if !y.Start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("year start: %v", y.Start)
	}
}

func TestLifetimeContainsEverything(t *testing.T) {
	w := Of(model.WindowLifetime, time.Now(), time.UTC)
	if !w.Contains(time.Date(1971, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("lifetime window should contain ancient timestamps")
	}
}

func TestHalfOpenBounds(t *testing.T) {
	w := Of(model.WindowWeek, time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC), time.UTC)
	if !w.Contains(w.Start) {
		t.Error("start should be inside the window")
	}
	if w.Contains(w.End) {
		t.Error("end should be outside the window")
	}
}

func TestFilterExcludesDeleted(t *testing.T) {
	w := Of(model.WindowWeek, time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC), time.UTC)
	deleted := time.Date(2026, 8, 18, 9, 0, 0, 0, time.UTC)
	entries := []model.Entry{
		{ID: "a", CreatedAt: time.Date(2026, 8, 18, 8, 0, 0, 0, time.UTC)},
		{ID: "b", CreatedAt: time.Date(2026, 8, 18, 9, 0, 0, 0, time.UTC), DeletedAt: &deleted},
		{ID: "c", CreatedAt: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)}, // previous week
	}

	got := Filter(entries, w)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only entry a, got %v", got)
	}
}

func TestGroupByDay(t *testing.T) {
	entries := []model.Entry{
		{ID: "a", CreatedAt: time.Date(2026, 8, 18, 8, 0, 0, 0, time.UTC)},
		{ID: "b", CreatedAt: time.Date(2026, 8, 18, 21, 0, 0, 0, time.UTC)},
		{ID: "c", CreatedAt: time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)},
	}

	days := GroupByDay(entries, time.UTC)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Day != "2026-08-17" || days[0].Count != 1 {
		t.Errorf("unexpected first day %+v", days[0])
	}
	if days[1].Day != "2026-08-18" || days[1].Count != 2 {
		t.Errorf("unexpected second day %+v", days[1])
	}
}

func TestGroupByDayRespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 23:00 UTC on the 17th is already the 18th at UTC+10.
	entries := []model.Entry{
		{ID: "a", CreatedAt: time.Date(2026, 8, 17, 23, 0, 0, 0, time.UTC)},
	}
	days := GroupByDay(entries, loc)
	if len(days) != 1 || days[0].Day != "2026-08-18" {
		t.Fatalf("expected 2026-08-18 in UTC+10, got %v", days)
	}
}
