// Package snapshot maintains the accumulated record of pattern appearances
// across windows. Memory only grows; pruning, if ever wanted, belongs to
// the caller.
package snapshot

import (
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

// Apply folds the current window's patterns into the previous snapshot set
// and returns the full updated array: updated snapshots first (in previous
// order), then fresh ones (in current order). Patterns absent from current
// are carried over unchanged. Given identical inputs the output is
// byte-identical.
func Apply(previous []model.PatternSnapshot, current []model.Pattern, windowKind model.WindowKind, at time.Time) []model.PatternSnapshot {
	seen := make(map[string]bool, len(current))
	byID := make(map[string]model.Pattern, len(current))
	for _, p := range current {
		byID[p.ID] = p
		seen[p.ID] = true
	}

	out := make([]model.PatternSnapshot, 0, len(previous)+len(current))
	updated := make(map[string]bool, len(previous))

	for _, prev := range previous {
		updated[prev.ID] = true
		p, ok := byID[prev.ID]
		if !ok {
			out = append(out, prev) // carried over unchanged
			continue
		}
		next := prev
		next.LastSeen = at
		next.Occurrences++
		if p.Strength != nil {
			next.LastStrength = p.Strength
		}
		next.Windows = appendWindow(prev.Windows, windowKind)
		out = append(out, next)
	}

	for _, p := range current {
		if updated[p.ID] {
			continue
		}
		out = append(out, model.PatternSnapshot{
			ID:           p.ID,
			Kind:         p.Kind,
			FirstSeen:    at,
			LastSeen:     at,
			Occurrences:  1,
			LastStrength: p.Strength,
			Windows:      []model.WindowKind{windowKind},
		})
	}

	return out
}

// appendWindow adds kind if not already present, copying so the previous
// snapshot's slice is never mutated.
func appendWindow(windows []model.WindowKind, kind model.WindowKind) []model.WindowKind {
	for _, w := range windows {
		if w == kind {
			return windows
		}
	}
	out := make([]model.WindowKind, len(windows), len(windows)+1)
	copy(out, windows)
	return append(out, kind)
}
