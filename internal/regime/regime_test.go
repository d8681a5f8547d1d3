package regime

import (
	"testing"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

func TestDetectBoundaries(t *testing.T) {
	cases := []struct {
		nodes int
		want  model.EmergenceRegime
	}{
		{0, model.RegimeSilenceDominant},
		{1, model.RegimeSilenceDominant},
		{2, model.RegimeSparseMeaning},
		{4, model.RegimeSparseMeaning},
		{5, model.RegimeDenseMeaning},
		{8, model.RegimeDenseMeaning},
	}
	for _, tc := range cases {
		if got := Detect(tc.nodes); got != tc.want {
			t.Errorf("Detect(%d): expected %s, got %s", tc.nodes, tc.want, got)
		}
	}
}

func TestDetectClampsOutOfRange(t *testing.T) {
	if got := Detect(-3); got != model.RegimeSilenceDominant {
		t.Errorf("negative count clamps to 0, got %s", got)
	}
	if got := Detect(25); got != model.RegimeDenseMeaning {
		t.Errorf("count above 8 clamps to 8, got %s", got)
	}
}

func TestTrackDwellStartsAtZero(t *testing.T) {
	session := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	now := session.Add(10 * time.Minute)

	st := TrackDwell(model.RegimeSparseMeaning, session, now, nil)
	if st.DwellDuration != 0 {
		t.Errorf("fresh state starts at zero dwell, got %v", st.DwellDuration)
	}
	if !st.EntryTimestamp.Equal(now) {
		t.Errorf("entry timestamp should pin to now, got %v", st.EntryTimestamp)
	}
}

func TestTrackDwellAccumulates(t *testing.T) {
	session := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	entered := session.Add(5 * time.Minute)
	prev := &model.RegimeDwellState{
		CurrentRegime:  model.RegimeSparseMeaning,
		EntryTimestamp: entered,
		SessionStart:   session,
	}
	now := entered.Add(20 * time.Minute)

	st := TrackDwell(model.RegimeSparseMeaning, session, now, prev)
	if st.DwellDuration != 20*time.Minute {
		t.Errorf("expected 20m dwell, got %v", st.DwellDuration)
	}
	if !st.EntryTimestamp.Equal(entered) {
		t.Errorf("entry timestamp must not move while the regime holds")
	}
}

func TestTrackDwellResetsOnRegimeChange(t *testing.T) {
	session := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	prev := &model.RegimeDwellState{
		CurrentRegime:  model.RegimeSparseMeaning,
		EntryTimestamp: session,
		SessionStart:   session,
		DwellDuration:  30 * time.Minute,
	}
	now := session.Add(time.Hour)

	st := TrackDwell(model.RegimeDenseMeaning, session, now, prev)
	if st.DwellDuration != 0 {
		t.Errorf("regime change resets dwell, got %v", st.DwellDuration)
	}
	if st.CurrentRegime != model.RegimeDenseMeaning {
		t.Errorf("unexpected regime %s", st.CurrentRegime)
	}
}

func TestTrackDwellResetsOnSessionChange(t *testing.T) {
	oldSession := time.Date(2026, 8, 18, 9, 0, 0, 0, time.UTC)
	newSession := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	prev := &model.RegimeDwellState{
		CurrentRegime:  model.RegimeSparseMeaning,
		EntryTimestamp: oldSession,
		SessionStart:   oldSession,
		DwellDuration:  time.Hour,
	}
	now := newSession.Add(time.Minute)

	st := TrackDwell(model.RegimeSparseMeaning, newSession, now, prev)
	if st.DwellDuration != 0 {
		t.Errorf("new session resets dwell even in the same regime, got %v", st.DwellDuration)
	}
}

func TestStateStoreIsolation(t *testing.T) {
	s := NewStateStore()
	if _, ok := s.Get("journal-a"); ok {
		t.Fatal("empty store should have no state")
	}

	s.Put("journal-a", model.RegimeDwellState{CurrentRegime: model.RegimeDenseMeaning})
	got, ok := s.Get("journal-a")
	if !ok || got.CurrentRegime != model.RegimeDenseMeaning {
		t.Errorf("stored state not returned: %v %v", got, ok)
	}
	if _, ok := s.Get("journal-b"); ok {
		t.Error("keys must not leak into each other")
	}
}
