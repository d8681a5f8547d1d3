// Package narrative turns pattern deltas into deterministic, calm prose and
// ranks the result so only signal surfaces.
package narrative

import (
	"fmt"

	"github.com/quillt/insight-engine/internal/model"
)

// phrasing is the fixed title/body table. Intentionally not data-dependent:
// one sentence per delta type keeps the tone non-evaluative.
var phrasing = map[model.DeltaType]struct {
	title string
	body  string
}{
	model.DeltaEmergent: {
		title: "A new rhythm appeared",
		body:  "This pattern showed up for the first time in the observed window.",
	},
	model.DeltaPersistent: {
		title: "A rhythm keeps returning",
		body:  "This pattern has recurred across several observed windows.",
	},
	model.DeltaStrengthening: {
		title: "A rhythm grew more pronounced",
		body:  "This pattern appeared more strongly than in the previous window.",
	},
	model.DeltaFading: {
		title: "A rhythm receded",
		body:  "This pattern appeared less strongly than before, or not at all.",
	},
	model.DeltaStable: {
		title: "A rhythm held steady",
		body:  "This pattern appeared at about the same strength as before.",
	},
}

// Generate maps a delta to its narrative. Pure and deterministic: the same
// delta always yields byte-identical output. Evidence ordering is fixed:
// occurrence count first, strength comparison second.
func Generate(d model.PatternDelta) model.PatternNarrative {
	p := phrasing[d.DeltaType]

	evidence := []string{occurrenceEvidence(d.OccurrenceCount)}
	if item := strengthEvidence(d); item != "" {
		evidence = append(evidence, item)
	}

	return model.PatternNarrative{
		ID:        d.ID,
		Kind:      d.Kind,
		DeltaType: d.DeltaType,
		Title:     p.title,
		Body:      p.body,
		Evidence:  evidence,
	}
}

func occurrenceEvidence(n int) string {
	if n == 1 {
		return "appeared 1 time across observed windows"
	}
	return fmt.Sprintf("appeared %d times across observed windows", n)
}

// strengthEvidence formats the strength comparison as a percentage,
// selecting among the four sub-cases.
func strengthEvidence(d model.PatternDelta) string {
	prev, cur := d.PreviousStrength, d.CurrentStrength
	switch {
	case prev != nil && cur == nil:
		return fmt.Sprintf("previously at %s, stopped appearing", pct(*prev))
	case prev != nil && cur != nil && *cur > *prev:
		return fmt.Sprintf("strength rose from %s to %s", pct(*prev), pct(*cur))
	case prev != nil && cur != nil:
		return fmt.Sprintf("strength eased from %s to %s", pct(*prev), pct(*cur))
	case cur != nil:
		return fmt.Sprintf("observed at %s strength", pct(*cur))
	default:
		return ""
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%d%%", int(v*100+0.5))
}
