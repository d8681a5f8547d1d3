package narrative

import (
	"sort"

	"github.com/quillt/insight-engine/internal/model"
)

// DefaultMaxNarratives bounds how many narratives surface per window.
const DefaultMaxNarratives = 3

// SelectOptions configures narrative selection.
type SelectOptions struct {
	MaxNarratives int
	IncludeStable bool
}

// categoryPriority ranks delta types; lower surfaces first. Emergence is
// the most information-bearing change, fading the least.
var categoryPriority = map[model.DeltaType]int{
	model.DeltaEmergent:      1,
	model.DeltaStrengthening: 2,
	model.DeltaPersistent:    3,
	model.DeltaStable:        4,
	model.DeltaFading:        5,
}

// Select filters out stable narratives (unless included), ranks the rest by
// category priority, then strength delta descending, then occurrence count
// descending, and returns the top MaxNarratives. Ranking keeps the surfaced
// set small as pattern count grows.
func Select(narratives []model.PatternNarrative, deltas []model.PatternDelta, opts SelectOptions) []model.PatternNarrative {
	max := opts.MaxNarratives
	if max <= 0 {
		max = DefaultMaxNarratives
	}

	deltaByID := make(map[string]model.PatternDelta, len(deltas))
	for _, d := range deltas {
		deltaByID[d.ID] = d
	}

	kept := make([]model.PatternNarrative, 0, len(narratives))
	for _, n := range narratives {
		if n.DeltaType == model.DeltaStable && !opts.IncludeStable {
			continue
		}
		kept = append(kept, n)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		pi, pj := categoryPriority[kept[i].DeltaType], categoryPriority[kept[j].DeltaType]
		if pi != pj {
			return pi < pj
		}
		si, sj := strengthDelta(deltaByID[kept[i].ID]), strengthDelta(deltaByID[kept[j].ID])
		if si != sj {
			return si > sj
		}
		return deltaByID[kept[i].ID].OccurrenceCount > deltaByID[kept[j].ID].OccurrenceCount
	})

	if len(kept) > max {
		kept = kept[:max]
	}
	return kept
}

// strengthDelta is current minus previous strength, current strength alone
// when there is no previous, and 0 when neither is known.
func strengthDelta(d model.PatternDelta) float64 {
	switch {
	case d.CurrentStrength != nil && d.PreviousStrength != nil:
		return *d.CurrentStrength - *d.PreviousStrength
	case d.CurrentStrength != nil:
		return *d.CurrentStrength
	default:
		return 0
	}
}
