// Package model defines the insight engine's core data types.
//
// Nothing in this model carries raw journal text inside identity or
// narrative fields, only counts, dates, and categorical labels. The store
// holds plaintext entries on the caller's behalf; the engine never echoes
// them back.
package model

import (
	"encoding/json"
	"time"
)

// Entry is a single journal reflection. Immutable once created and
// soft-deleted by timestamp; the engine reads entries, never mutates them.
type Entry struct {
	ID        string     `json:"id"`
	Journal   string     `json:"journal"`
	CreatedAt time.Time  `json:"created_at"`
	Plaintext string     `json:"plaintext"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the entry has been soft-deleted.
func (e Entry) Deleted() bool { return e.DeletedAt != nil }

// WindowKind identifies a calendar window scale.
type WindowKind string

const (
	WindowWeek     WindowKind = "week"
	WindowMonth    WindowKind = "month"
	WindowYear     WindowKind = "year"
	WindowLifetime WindowKind = "lifetime"
)

// Horizon identifies a computation horizon for the orchestrator.
type Horizon string

const (
	HorizonWeekly   Horizon = "weekly"
	HorizonSummary  Horizon = "summary"
	HorizonTimeline Horizon = "timeline"
)

// ValidHorizons are the horizons the orchestrator implements.
var ValidHorizons = map[Horizon]bool{
	HorizonWeekly:   true,
	HorizonSummary:  true,
	HorizonTimeline: true,
}

// PatternKind is the closed set of detectable pattern kinds.
type PatternKind string

const (
	KindWeekdayCadence    PatternKind = "weekday-cadence"
	KindActivitySpike     PatternKind = "activity-spike"
	KindTopicCluster      PatternKind = "topic-cluster"
	KindDistributionShape PatternKind = "distribution-shape"
)

// Pattern is a detected regularity within one window. ID is derived
// deterministically from Kind plus normalized attributes, so the same
// real-world pattern recomputed later yields an identical id.
type Pattern struct {
	ID       string      `json:"id"`
	Kind     PatternKind `json:"kind"`
	Label    string      `json:"label"`
	Strength *float64    `json:"strength,omitempty"` // in [0,1]
	Evidence []string    `json:"evidence,omitempty"`
}

// PatternSnapshot is the accumulated record of a pattern's appearances.
// It is the only state that persists across invocations: supplied by the
// caller, returned updated, and never shrunk by the engine.
type PatternSnapshot struct {
	ID           string       `json:"id"`
	Kind         PatternKind  `json:"kind"`
	FirstSeen    time.Time    `json:"first_seen"`
	LastSeen     time.Time    `json:"last_seen"`
	Occurrences  int          `json:"occurrences"`
	LastStrength *float64     `json:"last_strength,omitempty"`
	Windows      []WindowKind `json:"windows"`
}

// DeltaType classifies a pattern's change between two snapshot states.
type DeltaType string

const (
	DeltaEmergent      DeltaType = "emergent"
	DeltaPersistent    DeltaType = "persistent"
	DeltaStrengthening DeltaType = "strengthening"
	DeltaFading        DeltaType = "fading"
	DeltaStable        DeltaType = "stable"
)

// PatternDelta is the classified change of one pattern. A pure view derived
// per invocation, never stored.
type PatternDelta struct {
	ID               string      `json:"id"`
	Kind             PatternKind `json:"kind"`
	DeltaType        DeltaType   `json:"delta_type"`
	PreviousStrength *float64    `json:"previous_strength,omitempty"`
	CurrentStrength  *float64    `json:"current_strength,omitempty"`
	OccurrenceCount  int         `json:"occurrence_count"`
}

// PatternNarrative is deterministic templated prose describing a delta.
// Evidence items reference occurrence counts and strength changes, never
// reflection text.
type PatternNarrative struct {
	ID        string      `json:"id"`
	Kind      PatternKind `json:"kind"`
	DeltaType DeltaType   `json:"delta_type"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Evidence  []string    `json:"evidence"`
}

// InsightCard is the atomic unit exposed to the UI. Explanation must carry
// the four labeled sections (Claim/Evidence/Contrast/Confidence) to pass
// contract validation. Tags hold the categorical attributes pattern
// extraction uses to rebuild identity.
type InsightCard struct {
	ID          string            `json:"id"`
	Kind        PatternKind       `json:"kind"`
	Title       string            `json:"title"`
	Explanation string            `json:"explanation"`
	Evidence    []string          `json:"evidence"`
	Tags        map[string]string `json:"tags,omitempty"`
	Strength    *float64          `json:"strength,omitempty"`
	ComputedAt  time.Time         `json:"computed_at"`
}

// RejectedCard records why a candidate card failed the contract. Diagnostic
// only; never part of the stable contract.
type RejectedCard struct {
	Title   string   `json:"title"`
	Reasons []string `json:"reasons"`
}

// ArtifactDebug is diagnostic telemetry attached to an artifact.
type ArtifactDebug struct {
	EventCount    int            `json:"event_count"`
	ActiveDays    int            `json:"active_days"`
	PatternCount  int            `json:"pattern_count"`
	SnapshotCount int            `json:"snapshot_count"`
	SampleDays    []string       `json:"sample_days,omitempty"`
	RejectedCards []RejectedCard `json:"rejected_cards,omitempty"`
}

// InsightArtifact is the full computed output for one horizon. Immutable
// once produced.
type InsightArtifact struct {
	Horizon     Horizon            `json:"horizon"`
	WindowKind  WindowKind         `json:"window_kind"`
	WindowStart time.Time          `json:"window_start"`
	WindowEnd   time.Time          `json:"window_end"`
	CreatedAt   time.Time          `json:"created_at"`
	Cards       []InsightCard      `json:"cards"`
	Narratives  []PatternNarrative `json:"narratives,omitempty"`
	Debug       *ArtifactDebug     `json:"debug,omitempty"`
}

// Confidence is a coarse confidence level for distribution narratives.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// DistributionShape classifies an activity distribution.
type DistributionShape string

const (
	ShapeNormal    DistributionShape = "normal"
	ShapeLogNormal DistributionShape = "log_normal"
	ShapePowerLaw  DistributionShape = "power_law"
)

// EmergenceRegime is a coarse classification of current meaning density.
type EmergenceRegime string

const (
	RegimeSilenceDominant EmergenceRegime = "silence-dominant"
	RegimeSparseMeaning   EmergenceRegime = "sparse-meaning"
	RegimeDenseMeaning    EmergenceRegime = "dense-meaning"
)

// RegimeDwellState tracks how long the current regime has persisted within
// one session. Session-scoped, passed by value: previous state in, new
// state out. DwellDuration serializes as whole milliseconds.
type RegimeDwellState struct {
	CurrentRegime  EmergenceRegime
	EntryTimestamp time.Time
	SessionStart   time.Time
	DwellDuration  time.Duration
}

// regimeDwellStateJSON is the wire form of RegimeDwellState; dwell is
// carried as milliseconds, not Duration nanoseconds.
type regimeDwellStateJSON struct {
	CurrentRegime  EmergenceRegime `json:"current_regime"`
	EntryTimestamp time.Time       `json:"entry_timestamp"`
	SessionStart   time.Time       `json:"session_start"`
	DwellMS        int64           `json:"dwell_duration_ms"`
}

func (s RegimeDwellState) MarshalJSON() ([]byte, error) {
	return json.Marshal(regimeDwellStateJSON{
		CurrentRegime:  s.CurrentRegime,
		EntryTimestamp: s.EntryTimestamp,
		SessionStart:   s.SessionStart,
		DwellMS:        s.DwellDuration.Milliseconds(),
	})
}

func (s *RegimeDwellState) UnmarshalJSON(b []byte) error {
	var w regimeDwellStateJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.CurrentRegime = w.CurrentRegime
	s.EntryTimestamp = w.EntryTimestamp
	s.SessionStart = w.SessionStart
	s.DwellDuration = time.Duration(w.DwellMS) * time.Millisecond
	return nil
}
