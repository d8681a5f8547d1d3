package narrative

import (
	"testing"

	"github.com/quillt/insight-engine/internal/model"
)

func mk(id string, dt model.DeltaType) model.PatternNarrative {
	return model.PatternNarrative{ID: id, DeltaType: dt}
}

func TestSelectCategoryOrder(t *testing.T) {
	narratives := []model.PatternNarrative{
		mk("fade", model.DeltaFading),
		mk("persist", model.DeltaPersistent),
		mk("emerge", model.DeltaEmergent),
		mk("strengthen", model.DeltaStrengthening),
	}
	deltas := []model.PatternDelta{
		{ID: "fade", DeltaType: model.DeltaFading},
		{ID: "persist", DeltaType: model.DeltaPersistent},
		{ID: "emerge", DeltaType: model.DeltaEmergent},
		{ID: "strengthen", DeltaType: model.DeltaStrengthening},
	}

	got := Select(narratives, deltas, SelectOptions{MaxNarratives: 4})
	want := []string{"emerge", "strengthen", "persist", "fade"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSelectExcludesStableByDefault(t *testing.T) {
	narratives := []model.PatternNarrative{
		mk("steady", model.DeltaStable),
		mk("emerge", model.DeltaEmergent),
	}
	deltas := []model.PatternDelta{
		{ID: "steady", DeltaType: model.DeltaStable},
		{ID: "emerge", DeltaType: model.DeltaEmergent},
	}

	got := Select(narratives, deltas, SelectOptions{})
	if len(got) != 1 || got[0].ID != "emerge" {
		t.Fatalf("stable should be dropped, got %v", got)
	}

	withStable := Select(narratives, deltas, SelectOptions{IncludeStable: true})
	if len(withStable) != 2 {
		t.Errorf("IncludeStable should keep stable, got %v", withStable)
	}
}

func TestSelectStrengthDeltaTiebreak(t *testing.T) {
	a, b := 0.1, 0.4
	pa, pb := 0.05, 0.1
	narratives := []model.PatternNarrative{
		mk("small", model.DeltaStrengthening),
		mk("large", model.DeltaStrengthening),
	}
	deltas := []model.PatternDelta{
		{ID: "small", DeltaType: model.DeltaStrengthening, PreviousStrength: &pa, CurrentStrength: &a},
		{ID: "large", DeltaType: model.DeltaStrengthening, PreviousStrength: &pb, CurrentStrength: &b},
	}

	got := Select(narratives, deltas, SelectOptions{MaxNarratives: 2})
	if got[0].ID != "large" {
		t.Errorf("larger strength delta should rank first, got %s", got[0].ID)
	}
}

func TestSelectOccurrenceTiebreak(t *testing.T) {
	narratives := []model.PatternNarrative{
		mk("few", model.DeltaPersistent),
		mk("many", model.DeltaPersistent),
	}
	deltas := []model.PatternDelta{
		{ID: "few", DeltaType: model.DeltaPersistent, OccurrenceCount: 3},
		{ID: "many", DeltaType: model.DeltaPersistent, OccurrenceCount: 7},
	}

	got := Select(narratives, deltas, SelectOptions{MaxNarratives: 2})
	if got[0].ID != "many" {
		t.Errorf("higher occurrence count should rank first, got %s", got[0].ID)
	}
}

func TestSelectCapsAtMax(t *testing.T) {
	var narratives []model.PatternNarrative
	var deltas []model.PatternDelta
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		narratives = append(narratives, mk(id, model.DeltaEmergent))
		deltas = append(deltas, model.PatternDelta{ID: id, DeltaType: model.DeltaEmergent})
	}

	got := Select(narratives, deltas, SelectOptions{})
	if len(got) != DefaultMaxNarratives {
		t.Errorf("expected %d narratives, got %d", DefaultMaxNarratives, len(got))
	}
}

func TestSelectStableSort(t *testing.T) {
	narratives := []model.PatternNarrative{
		mk("first", model.DeltaEmergent),
		mk("second", model.DeltaEmergent),
	}
	deltas := []model.PatternDelta{
		{ID: "first", DeltaType: model.DeltaEmergent},
		{ID: "second", DeltaType: model.DeltaEmergent},
	}

	got := Select(narratives, deltas, SelectOptions{MaxNarratives: 2})
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("ties should keep input order, got %s %s", got[0].ID, got[1].ID)
	}
}
