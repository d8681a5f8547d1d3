// Package delta classifies how each pattern changed between two snapshot
// states. The classification is total: every id in the union of both sets
// appears in exactly one emitted delta.
package delta

import (
	"github.com/quillt/insight-engine/internal/model"
)

// strengtheningStep is the minimum strength gain that counts as
// strengthening.
const strengtheningStep = 0.2

// persistentOccurrences is the occurrence count at which a pattern is
// classified persistent. Persistence dominates strength signals: a snapshot
// at three or more occurrences is persistent even if strength jumped
// sharply in the same window.
const persistentOccurrences = 3

// Analyze diffs current snapshots against previous ones. Snapshots present
// only in previous emit a synthetic fading delta with no current strength.
// Output order: current set first, then vanished previous entries.
func Analyze(previous, current []model.PatternSnapshot) []model.PatternDelta {
	prevByID := make(map[string]model.PatternSnapshot, len(previous))
	for _, s := range previous {
		prevByID[s.ID] = s
	}

	inCurrent := make(map[string]bool, len(current))
	out := make([]model.PatternDelta, 0, len(previous)+len(current))

	for _, cur := range current {
		inCurrent[cur.ID] = true
		prev, existed := prevByID[cur.ID]
		out = append(out, model.PatternDelta{
			ID:               cur.ID,
			Kind:             cur.Kind,
			DeltaType:        classify(prev, cur, existed),
			PreviousStrength: strengthOf(prev, existed),
			CurrentStrength:  cur.LastStrength,
			OccurrenceCount:  cur.Occurrences,
		})
	}

	for _, prev := range previous {
		if inCurrent[prev.ID] {
			continue
		}
		out = append(out, model.PatternDelta{
			ID:               prev.ID,
			Kind:             prev.Kind,
			DeltaType:        model.DeltaFading,
			PreviousStrength: prev.LastStrength,
			CurrentStrength:  nil,
			OccurrenceCount:  prev.Occurrences,
		})
	}

	return out
}

func classify(prev, cur model.PatternSnapshot, existed bool) model.DeltaType {
	switch {
	case !existed:
		return model.DeltaEmergent
	case cur.Occurrences >= persistentOccurrences:
		return model.DeltaPersistent
	case prev.LastStrength != nil && cur.LastStrength != nil &&
		*cur.LastStrength-*prev.LastStrength >= strengtheningStep:
		return model.DeltaStrengthening
	case prev.LastStrength != nil &&
		(cur.LastStrength == nil || *cur.LastStrength < *prev.LastStrength):
		return model.DeltaFading
	default:
		return model.DeltaStable
	}
}

func strengthOf(s model.PatternSnapshot, existed bool) *float64 {
	if !existed {
		return nil
	}
	return s.LastStrength
}
