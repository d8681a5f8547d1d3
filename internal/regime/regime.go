// Package regime classifies current meaning density and tracks how long
// the current regime has persisted. Read-only overlay: nothing here feeds
// back into pattern detection, snapshots, or card validation.
package regime

import (
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

const maxMeaningNodes = 8

// Detect classifies an active meaning-node count into a regime. The count
// is clamped to [0,8]; boundary crossings switch the regime immediately,
// with no hysteresis.
func Detect(activeMeaningNodeCount int) model.EmergenceRegime {
	n := activeMeaningNodeCount
	if n < 0 {
		n = 0
	}
	if n > maxMeaningNodes {
		n = maxMeaningNodes
	}
	switch {
	case n <= 1:
		return model.RegimeSilenceDominant
	case n <= 4:
		return model.RegimeSparseMeaning
	default:
		return model.RegimeDenseMeaning
	}
}

// TrackDwell advances session-scoped dwell state. Dwell resets when there
// is no previous state, the session start changed, or the regime changed;
// otherwise it accumulates from the pinned entry timestamp.
func TrackDwell(current model.EmergenceRegime, sessionStart, now time.Time, previous *model.RegimeDwellState) model.RegimeDwellState {
	if previous == nil ||
		!previous.SessionStart.Equal(sessionStart) ||
		previous.CurrentRegime != current {
		return model.RegimeDwellState{
			CurrentRegime:  current,
			EntryTimestamp: now,
			SessionStart:   sessionStart,
			DwellDuration:  0,
		}
	}
	return model.RegimeDwellState{
		CurrentRegime:  current,
		EntryTimestamp: previous.EntryTimestamp,
		SessionStart:   sessionStart,
		DwellDuration:  now.Sub(previous.EntryTimestamp),
	}
}

// StateStore holds dwell state per caller key (wallet address or journal
// name). Owned by the host, never a package-level singleton, so sessions
// cannot leak into each other.
type StateStore struct {
	states map[string]model.RegimeDwellState
}

// NewStateStore returns an empty store.
func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]model.RegimeDwellState)}
}

// Get returns the stored state for key, if any.
func (s *StateStore) Get(key string) (model.RegimeDwellState, bool) {
	st, ok := s.states[key]
	return st, ok
}

// Put stores the state for key.
func (s *StateStore) Put(key string, st model.RegimeDwellState) {
	s.states[key] = st
}
