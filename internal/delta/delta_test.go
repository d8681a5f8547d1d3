package delta

import (
	"testing"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

func fp(v float64) *float64 { return &v }

func snap(id string, occ int, strength *float64) model.PatternSnapshot {
	t0 := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	return model.PatternSnapshot{
		ID: id, Kind: model.KindTopicCluster,
		FirstSeen: t0, LastSeen: t0,
		Occurrences: occ, LastStrength: strength,
		Windows: []model.WindowKind{model.WindowWeek},
	}
}

func TestAnalyzeEmergent(t *testing.T) {
	out := Analyze(nil, []model.PatternSnapshot{snap("a", 1, fp(0.5))})
	if len(out) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(out))
	}
	d := out[0]
	if d.DeltaType != model.DeltaEmergent {
		t.Errorf("expected emergent, got %s", d.DeltaType)
	}
	if d.PreviousStrength != nil {
		t.Errorf("emergent delta must have no previous strength")
	}
}

func TestAnalyzePersistent(t *testing.T) {
	prev := []model.PatternSnapshot{snap("a", 2, fp(0.5))}
	cur := []model.PatternSnapshot{snap("a", 3, fp(0.5))}
	out := Analyze(prev, cur)
	if out[0].DeltaType != model.DeltaPersistent {
		t.Errorf("expected persistent at 3 occurrences, got %s", out[0].DeltaType)
	}
}

// Persistence wins over a strength jump: once a pattern reaches three
// occurrences it is reported persistent even if strength rose past the
// strengthening step in the same window.
func TestAnalyzePersistentDominatesStrengthening(t *testing.T) {
	prev := []model.PatternSnapshot{snap("a", 2, fp(0.3))}
	cur := []model.PatternSnapshot{snap("a", 3, fp(0.9))}
	out := Analyze(prev, cur)
	if out[0].DeltaType != model.DeltaPersistent {
		t.Errorf("expected persistent to dominate, got %s", out[0].DeltaType)
	}
}

func TestAnalyzeStrengthening(t *testing.T) {
	prev := []model.PatternSnapshot{snap("a", 1, fp(0.3))}
	cur := []model.PatternSnapshot{snap("a", 2, fp(0.5))}
	out := Analyze(prev, cur)
	if out[0].DeltaType != model.DeltaStrengthening {
		t.Errorf("expected strengthening at +0.2, got %s", out[0].DeltaType)
	}
}

func TestAnalyzeBelowStepIsStable(t *testing.T) {
	prev := []model.PatternSnapshot{snap("a", 1, fp(0.3))}
	cur := []model.PatternSnapshot{snap("a", 2, fp(0.45))}
	out := Analyze(prev, cur)
	if out[0].DeltaType != model.DeltaStable {
		t.Errorf("a +0.15 gain should be stable, got %s", out[0].DeltaType)
	}
}

func TestAnalyzeFadingOnStrengthDrop(t *testing.T) {
	prev := []model.PatternSnapshot{snap("a", 1, fp(0.6))}
	cur := []model.PatternSnapshot{snap("a", 2, fp(0.4))}
	out := Analyze(prev, cur)
	if out[0].DeltaType != model.DeltaFading {
		t.Errorf("expected fading on a strength drop, got %s", out[0].DeltaType)
	}
}

func TestAnalyzeVanishedEmitsSyntheticFading(t *testing.T) {
	prev := []model.PatternSnapshot{snap("gone", 2, fp(0.7))}
	out := Analyze(prev, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(out))
	}
	d := out[0]
	if d.DeltaType != model.DeltaFading {
		t.Errorf("vanished pattern should fade, got %s", d.DeltaType)
	}
	if d.CurrentStrength != nil {
		t.Errorf("vanished pattern has no current strength")
	}
	if d.PreviousStrength == nil || *d.PreviousStrength != 0.7 {
		t.Errorf("previous strength should survive: %v", d.PreviousStrength)
	}
}

func TestAnalyzeTotal(t *testing.T) {
	prev := []model.PatternSnapshot{
		snap("a", 1, fp(0.5)),
		snap("b", 3, fp(0.4)),
	}
	cur := []model.PatternSnapshot{
		snap("b", 4, fp(0.4)),
		snap("c", 1, fp(0.2)),
	}

	out := Analyze(prev, cur)
	if len(out) != 3 {
		t.Fatalf("every id in the union gets exactly one delta, got %d", len(out))
	}
	byID := map[string]model.DeltaType{}
	for _, d := range out {
		if _, dup := byID[d.ID]; dup {
			t.Fatalf("duplicate delta for %s", d.ID)
		}
		byID[d.ID] = d.DeltaType
	}
	if byID["a"] != model.DeltaFading {
		t.Errorf("a should fade, got %s", byID["a"])
	}
	if byID["b"] != model.DeltaPersistent {
		t.Errorf("b should be persistent, got %s", byID["b"])
	}
	if byID["c"] != model.DeltaEmergent {
		t.Errorf("c should be emergent, got %s", byID["c"])
	}
	// Current set first, vanished last.
	if out[0].ID != "b" || out[1].ID != "c" || out[2].ID != "a" {
		t.Errorf("unexpected order: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
}
