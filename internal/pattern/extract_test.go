package pattern

import (
	"testing"

	"github.com/quillt/insight-engine/internal/model"
)

func TestFromCardsUsesTagsForIdentity(t *testing.T) {
	strength := 0.6
	cards := []model.InsightCard{
		{
			Kind:     model.KindTopicCluster,
			Title:    "A recurring focus on \"meetings\"",
			Tags:     map[string]string{"topic": "meetings"},
			Strength: &strength,
			Evidence: []string{"4 of 8 entries touched this theme"},
		},
	}

	patterns := FromCards(cards)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	p := patterns[0]
	if p.ID != "topic-cluster:topic=meetings" {
		t.Errorf("unexpected id %q", p.ID)
	}
	if p.Strength == nil || *p.Strength != 0.6 {
		t.Errorf("strength not carried over: %v", p.Strength)
	}
}

func TestFromCardsSkipsUnknownKinds(t *testing.T) {
	cards := []model.InsightCard{
		{Kind: "something-else", Title: "not trackable"},
		{Kind: model.KindWeekdayCadence, Tags: map[string]string{"weekday": "tuesday"}},
	}
	patterns := FromCards(cards)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if patterns[0].Kind != model.KindWeekdayCadence {
		t.Errorf("unexpected kind %q", patterns[0].Kind)
	}
}
