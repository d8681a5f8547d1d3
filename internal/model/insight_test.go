package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRegimeDwellStateMarshalsMilliseconds(t *testing.T) {
	session := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	st := RegimeDwellState{
		CurrentRegime:  RegimeSparseMeaning,
		EntryTimestamp: session.Add(5 * time.Minute),
		SessionStart:   session,
		DwellDuration:  1500 * time.Millisecond,
	}

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"dwell_duration_ms":1500`) {
		t.Errorf("dwell should serialize as milliseconds, got %s", b)
	}
}

func TestRegimeDwellStateRoundTrip(t *testing.T) {
	session := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	st := RegimeDwellState{
		CurrentRegime:  RegimeDenseMeaning,
		EntryTimestamp: session,
		SessionStart:   session,
		DwellDuration:  20 * time.Minute,
	}

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got RegimeDwellState
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.CurrentRegime != RegimeDenseMeaning {
		t.Errorf("regime lost: %s", got.CurrentRegime)
	}
	if got.DwellDuration != 20*time.Minute {
		t.Errorf("dwell duration lost: %v", got.DwellDuration)
	}
	if !got.SessionStart.Equal(session) {
		t.Errorf("session start lost: %v", got.SessionStart)
	}
}
