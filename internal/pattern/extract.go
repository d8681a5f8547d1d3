package pattern

import (
	"github.com/quillt/insight-engine/internal/model"
)

// extractableKinds are the card kinds that map onto tracked patterns.
var extractableKinds = map[model.PatternKind]bool{
	model.KindWeekdayCadence:    true,
	model.KindActivitySpike:     true,
	model.KindTopicCluster:      true,
	model.KindDistributionShape: true,
}

// FromCards derives the flat pattern set for an artifact's cards. Identity
// comes from the card's kind plus its categorical tags, never from title
// text, so recomputation of the same window yields the same ids.
func FromCards(cards []model.InsightCard) []model.Pattern {
	var out []model.Pattern
	for _, c := range cards {
		if !extractableKinds[c.Kind] {
			continue
		}
		attrs := make(map[string]any, len(c.Tags))
		for k, v := range c.Tags {
			attrs[k] = v
		}
		out = append(out, model.Pattern{
			ID:       MakeID(c.Kind, attrs),
			Kind:     c.Kind,
			Label:    c.Title,
			Strength: c.Strength,
			Evidence: c.Evidence,
		})
	}
	return out
}
