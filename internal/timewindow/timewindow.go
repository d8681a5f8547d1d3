// Package timewindow computes calendar-aligned windows and groups
// timestamped entries by window. Pure functions, clock passed in; same
// inputs always produce the same windows.
package timewindow

import (
	"sort"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

// lifetimeEnd is far enough out that every real timestamp falls before it.
var lifetimeEnd = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// Window is a half-open calendar range [Start, End). Weeks are
// Monday-aligned in the location they were computed for. Computed freshly
// per call, never stored.
type Window struct {
	Kind  model.WindowKind `json:"kind"`
	Start time.Time        `json:"start"`
	End   time.Time        `json:"end"`
}

// Of returns the window of the given kind containing t, aligned in loc.
// A nil loc means UTC. Unknown kinds fall back to lifetime.
func Of(kind model.WindowKind, t time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

	switch kind {
	case model.WindowWeek:
		// Monday-aligned: Monday=0 ... Sunday=6.
		back := (int(t.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -back)
		return Window{Kind: kind, Start: start, End: start.AddDate(0, 0, 7)}
	case model.WindowMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		return Window{Kind: kind, Start: start, End: start.AddDate(0, 1, 0)}
	case model.WindowYear:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
		return Window{Kind: kind, Start: start, End: start.AddDate(1, 0, 0)}
	default:
		return Window{Kind: model.WindowLifetime, Start: time.Time{}, End: lifetimeEnd}
	}
}

// Span builds a window of the given kind over an explicit [start, end)
// range, for callers that supply their own bounds.
func Span(kind model.WindowKind, start, end time.Time) Window {
	return Window{Kind: kind, Start: start, End: end}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.Kind == model.WindowLifetime {
		return true
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

// Filter returns the entries that fall inside the window, excluding
// soft-deleted ones. Input order is preserved.
func Filter(entries []model.Entry, w Window) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		if w.Contains(e.CreatedAt) {
			out = append(out, e)
		}
	}
	return out
}

// DayCount is the number of entries on one calendar day.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD in the grouping location
	Count int    `json:"count"`
}

// GroupByDay counts entries per calendar day in loc, sorted by day
// ascending. Soft-deleted entries are skipped.
func GroupByDay(entries []model.Entry, loc *time.Location) []DayCount {
	if loc == nil {
		loc = time.UTC
	}
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		day := e.CreatedAt.In(loc).Format("2006-01-02")
		if _, ok := counts[day]; !ok {
			order = append(order, day)
		}
		counts[day]++
	}
	// Day keys sort lexicographically in date order.
	sort.Strings(order)
	out := make([]DayCount, 0, len(order))
	for _, day := range order {
		out = append(out, DayCount{Day: day, Count: counts[day]})
	}
	return out
}

// GroupByWeekday counts entries per weekday in loc.
func GroupByWeekday(entries []model.Entry, loc *time.Location) map[time.Weekday]int {
	if loc == nil {
		loc = time.UTC
	}
	counts := map[time.Weekday]int{}
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		counts[e.CreatedAt.In(loc).Weekday()]++
	}
	return counts
}
