package snapshot

import (
	"reflect"
	"testing"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

func fp(v float64) *float64 { return &v }

var t0 = time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
var t1 = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func TestApplyCreatesFreshSnapshots(t *testing.T) {
	current := []model.Pattern{
		{ID: "topic-cluster:topic=meetings", Kind: model.KindTopicCluster, Strength: fp(0.5)},
	}

	out := Apply(nil, current, model.WindowWeek, t0)
	if len(out) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(out))
	}
	s := out[0]
	if s.Occurrences != 1 {
		t.Errorf("expected occurrences 1, got %d", s.Occurrences)
	}
	if !s.FirstSeen.Equal(t0) || !s.LastSeen.Equal(t0) {
		t.Errorf("first/last seen not pinned to timestamp: %v %v", s.FirstSeen, s.LastSeen)
	}
	if len(s.Windows) != 1 || s.Windows[0] != model.WindowWeek {
		t.Errorf("unexpected windows %v", s.Windows)
	}
}

func TestApplyUpdatesExisting(t *testing.T) {
	previous := []model.PatternSnapshot{{
		ID: "a", Kind: model.KindTopicCluster,
		FirstSeen: t0, LastSeen: t0, Occurrences: 1,
		LastStrength: fp(0.4), Windows: []model.WindowKind{model.WindowWeek},
	}}
	current := []model.Pattern{{ID: "a", Kind: model.KindTopicCluster, Strength: fp(0.7)}}

	out := Apply(previous, current, model.WindowMonth, t1)
	if len(out) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(out))
	}
	s := out[0]
	if s.Occurrences != 2 {
		t.Errorf("expected occurrences 2, got %d", s.Occurrences)
	}
	if !s.FirstSeen.Equal(t0) {
		t.Errorf("first seen must not move: %v", s.FirstSeen)
	}
	if !s.LastSeen.Equal(t1) {
		t.Errorf("last seen should advance: %v", s.LastSeen)
	}
	if *s.LastStrength != 0.7 {
		t.Errorf("strength should update, got %v", *s.LastStrength)
	}
	want := []model.WindowKind{model.WindowWeek, model.WindowMonth}
	if !reflect.DeepEqual(s.Windows, want) {
		t.Errorf("expected windows %v, got %v", want, s.Windows)
	}
}

func TestApplyKeepsStrengthWhenPatternHasNone(t *testing.T) {
	previous := []model.PatternSnapshot{{
		ID: "a", FirstSeen: t0, LastSeen: t0, Occurrences: 1, LastStrength: fp(0.4),
		Windows: []model.WindowKind{model.WindowWeek},
	}}
	current := []model.Pattern{{ID: "a"}}

	out := Apply(previous, current, model.WindowWeek, t1)
	if out[0].LastStrength == nil || *out[0].LastStrength != 0.4 {
		t.Errorf("strength should survive a nil-strength update: %v", out[0].LastStrength)
	}
}

func TestApplyCarriesOverAbsentPatterns(t *testing.T) {
	previous := []model.PatternSnapshot{{
		ID: "gone", FirstSeen: t0, LastSeen: t0, Occurrences: 2,
		Windows: []model.WindowKind{model.WindowWeek},
	}}

	out := Apply(previous, nil, model.WindowWeek, t1)
	if len(out) != 1 {
		t.Fatalf("memory must not shrink, got %d snapshots", len(out))
	}
	if !reflect.DeepEqual(out[0], previous[0]) {
		t.Errorf("carried-over snapshot changed: %+v", out[0])
	}
}

func TestApplyDoesNotDuplicateWindowKind(t *testing.T) {
	previous := []model.PatternSnapshot{{
		ID: "a", FirstSeen: t0, LastSeen: t0, Occurrences: 1,
		Windows: []model.WindowKind{model.WindowWeek},
	}}
	current := []model.Pattern{{ID: "a"}}

	out := Apply(previous, current, model.WindowWeek, t1)
	if len(out[0].Windows) != 1 {
		t.Errorf("window kind duplicated: %v", out[0].Windows)
	}
}

func TestApplyDeterministic(t *testing.T) {
	previous := []model.PatternSnapshot{
		{ID: "a", FirstSeen: t0, LastSeen: t0, Occurrences: 1, Windows: []model.WindowKind{model.WindowWeek}},
		{ID: "b", FirstSeen: t0, LastSeen: t0, Occurrences: 3, Windows: []model.WindowKind{model.WindowWeek}},
	}
	current := []model.Pattern{
		{ID: "b", Strength: fp(0.9)},
		{ID: "c", Strength: fp(0.2)},
	}

	first := Apply(previous, current, model.WindowWeek, t1)
	for i := 0; i < 3; i++ {
		if got := Apply(previous, current, model.WindowWeek, t1); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %+v vs %+v", i, got, first)
		}
	}
	// Order: previous entries first, then new patterns.
	if first[0].ID != "a" || first[1].ID != "b" || first[2].ID != "c" {
		t.Errorf("unexpected order: %s %s %s", first[0].ID, first[1].ID, first[2].ID)
	}
}
