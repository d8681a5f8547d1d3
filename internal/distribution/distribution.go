// Package distribution classifies the shape of an activity distribution
// and produces scope-scaled, confidence-capped prose about it.
package distribution

import (
	"math"

	"github.com/quillt/insight-engine/internal/model"
)

// Classify buckets a per-day activity histogram into one of three shapes
// with an associated confidence. Deterministic heuristics on counts only:
// a single dominant day reads as power-law, moderate right skew as
// log-normal, anything else as normal. Confidence follows sample size.
func Classify(dayCounts []int) (model.DistributionShape, model.Confidence) {
	n := len(dayCounts)
	if n == 0 {
		return model.ShapeNormal, model.ConfidenceLow
	}

	total := 0
	max := 0
	for _, c := range dayCounts {
		total += c
		if c > max {
			max = c
		}
	}
	mean := float64(total) / float64(n)

	var variance float64
	for _, c := range dayCounts {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(n)
	sd := math.Sqrt(variance)

	shape := model.ShapeNormal
	switch {
	case mean > 0 && float64(max) >= 3*mean:
		shape = model.ShapePowerLaw
	case mean > 0 && sd > mean:
		shape = model.ShapeLogNormal
	}

	conf := model.ConfidenceHigh
	switch {
	case total < 5:
		conf = model.ConfidenceLow
	case total < 15:
		conf = model.ConfidenceMedium
	}
	return shape, conf
}

// ScaledNarrative is scope-specific prose about a distribution shape.
type ScaledNarrative struct {
	Headline   string           `json:"headline"`
	Summary    string           `json:"summary"`
	Confidence model.Confidence `json:"confidence"`
}

// templates is the fixed scope x shape table.
var templates = map[model.WindowKind]map[model.DistributionShape]ScaledNarrative{
	model.WindowWeek: {
		model.ShapeNormal: {
			Headline: "This week held an even spread of activity",
			Summary:  "Entries landed at a steady pace across the week's active days.",
		},
		model.ShapeLogNormal: {
			Headline: "This week showed focused bursts of activity",
			Summary:  "A few days carried noticeably more entries than the rest of the week.",
		},
		model.ShapePowerLaw: {
			Headline: "This week concentrated around one heavy day",
			Summary:  "One day carried most of the week's entries; the rest stayed quiet.",
		},
	},
	model.WindowMonth: {
		model.ShapeNormal: {
			Headline: "This month held an even spread of activity",
			Summary:  "Entries arrived at a steady pace across the month.",
		},
		model.ShapeLogNormal: {
			Headline: "This month clustered into active stretches",
			Summary:  "Several stretches carried more entries than the surrounding days.",
		},
		model.ShapePowerLaw: {
			Headline: "This month concentrated around a few heavy days",
			Summary:  "A small number of days carried most of the month's entries.",
		},
	},
	model.WindowYear: {
		model.ShapeNormal: {
			Headline: "This year held an even spread of activity",
			Summary:  "Entries arrived at a steady pace across the year.",
		},
		model.ShapeLogNormal: {
			Headline: "This year clustered into active seasons",
			Summary:  "Certain stretches of the year carried more entries than others.",
		},
		model.ShapePowerLaw: {
			Headline: "This year concentrated around a few intense periods",
			Summary:  "A handful of periods carried most of the year's entries.",
		},
	},
}

// ScaleNarrative selects the scope-specific template and applies the
// asymmetric confidence cap: week never claims high confidence, month
// passes confidence through, year caps high to medium unless totalEvents
// exceeds 100.
func ScaleNarrative(scope model.WindowKind, shape model.DistributionShape, confidence model.Confidence, totalEvents int) ScaledNarrative {
	byShape, ok := templates[scope]
	if !ok {
		byShape = templates[model.WindowMonth]
	}
	out, ok := byShape[shape]
	if !ok {
		out = byShape[model.ShapeNormal]
	}

	out.Confidence = capConfidence(scope, confidence, totalEvents)
	return out
}

func capConfidence(scope model.WindowKind, confidence model.Confidence, totalEvents int) model.Confidence {
	if confidence != model.ConfidenceHigh {
		return confidence
	}
	switch scope {
	case model.WindowWeek:
		return model.ConfidenceMedium
	case model.WindowYear:
		if totalEvents > 100 {
			return model.ConfidenceHigh
		}
		return model.ConfidenceMedium
	default:
		return confidence
	}
}
