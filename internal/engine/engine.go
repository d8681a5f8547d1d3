// Package engine orchestrates insight computation for one time horizon:
// build the base artifact, then best-effort attach pattern narratives.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillt/insight-engine/internal/delta"
	"github.com/quillt/insight-engine/internal/model"
	"github.com/quillt/insight-engine/internal/narrative"
	"github.com/quillt/insight-engine/internal/pattern"
	"github.com/quillt/insight-engine/internal/snapshot"
	"github.com/quillt/insight-engine/internal/timewindow"
)

// ErrUnsupportedHorizon is returned when a horizon has no builder. The one
// loud failure in the engine; everything else degrades.
var ErrUnsupportedHorizon = errors.New("unsupported insight horizon")

// ComputeParams are the inputs for one invocation. All state crosses the
// boundary here: the engine holds nothing between calls.
type ComputeParams struct {
	Horizon     model.Horizon
	Events      []model.Entry
	WindowStart time.Time
	WindowEnd   time.Time
	Timezone    *time.Location // nil means UTC
	Wallet      string         // caller identity, used in logs only

	// PreviousSnapshots is the snapshot set from the last invocation,
	// persisted by the caller.
	PreviousSnapshots []model.PatternSnapshot

	// Now overrides the clock; zero means time.Now().UTC().
	Now time.Time
}

// Result bundles the artifact with the updated snapshot set the caller
// must persist for the next invocation.
type Result struct {
	Artifact  *model.InsightArtifact
	Snapshots []model.PatternSnapshot
}

// Engine computes insight artifacts. Stateless apart from its logger;
// safe to reuse across invocations.
type Engine struct {
	log zerolog.Logger

	// attach is the guarded narrative stage; swapped in tests to exercise
	// the failure path.
	attach func(p ComputeParams, art *model.InsightArtifact, kind model.WindowKind, now time.Time) ([]model.PatternNarrative, []model.PatternSnapshot, error)
}

// New returns an engine logging through log.
func New(log zerolog.Logger) *Engine {
	e := &Engine{log: log}
	e.attach = e.attachNarratives
	return e
}

// ComputeInsightsForWindow is the single entry point. It builds the base
// artifact for the horizon, then runs the narrative stage. A narrative
// failure is logged and discarded, and the previous snapshots are returned
// unchanged in that case.
func (e *Engine) ComputeInsightsForWindow(p ComputeParams) (*Result, error) {
	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	loc := p.Timezone
	if loc == nil {
		loc = time.UTC
	}

	var art *model.InsightArtifact
	switch p.Horizon {
	case model.HorizonWeekly:
		art = buildActivityArtifact(p, model.WindowWeek, loc, now)
	case model.HorizonSummary:
		art = buildActivityArtifact(p, model.WindowMonth, loc, now)
	case model.HorizonTimeline:
		art = buildTimelineArtifact(p, now)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHorizon, p.Horizon)
	}

	res := &Result{Artifact: art, Snapshots: p.PreviousSnapshots}

	narratives, snaps, err := e.attach(p, art, snapshotKindFor(p.Horizon), now)
	if err != nil {
		e.log.Warn().
			Err(err).
			Str("horizon", string(p.Horizon)).
			Str("wallet", p.Wallet).
			Msg("narrative stage failed, returning artifact without narratives")
		return res, nil
	}

	art.Narratives = narratives
	res.Snapshots = snaps
	return res, nil
}

// attachNarratives runs extraction, snapshot memory, delta classification,
// generation and selection. Deltas are computed against the snapshots whose
// pattern appeared this invocation, so patterns that vanished since last
// time still emit their synthetic fading delta even though memory never
// shrinks.
func (e *Engine) attachNarratives(p ComputeParams, art *model.InsightArtifact, kind model.WindowKind, now time.Time) ([]model.PatternNarrative, []model.PatternSnapshot, error) {
	patterns := pattern.FromCards(art.Cards)
	updated := snapshot.Apply(p.PreviousSnapshots, patterns, kind, now)

	activeIDs := make(map[string]bool, len(patterns))
	for _, pt := range patterns {
		activeIDs[pt.ID] = true
	}
	active := make([]model.PatternSnapshot, 0, len(patterns))
	for _, s := range updated {
		if activeIDs[s.ID] {
			active = append(active, s)
		}
	}

	deltas := delta.Analyze(p.PreviousSnapshots, active)

	narratives := make([]model.PatternNarrative, 0, len(deltas))
	for _, d := range deltas {
		narratives = append(narratives, narrative.Generate(d))
	}
	selected := narrative.Select(narratives, deltas, narrative.SelectOptions{
		MaxNarratives: maxNarrativesFor(p.Horizon),
	})

	if art.Debug != nil {
		art.Debug.PatternCount = len(patterns)
		art.Debug.SnapshotCount = len(updated)
	}
	return selected, updated, nil
}

// snapshotKindFor maps a horizon to the window kind recorded in snapshot
// memory.
func snapshotKindFor(h model.Horizon) model.WindowKind {
	if h == model.HorizonTimeline {
		return model.WindowMonth
	}
	return model.WindowWeek
}

func maxNarrativesFor(h model.Horizon) int {
	if h == model.HorizonWeekly {
		return 3
	}
	return 2
}

// buildTimelineArtifact is a placeholder: the timeline horizon is accepted
// but produces no cards yet.
func buildTimelineArtifact(p ComputeParams, now time.Time) *model.InsightArtifact {
	return &model.InsightArtifact{
		Horizon:     model.HorizonTimeline,
		WindowKind:  model.WindowMonth,
		WindowStart: p.WindowStart,
		WindowEnd:   p.WindowEnd,
		CreatedAt:   now,
		Cards:       []model.InsightCard{},
		Debug:       &model.ArtifactDebug{EventCount: len(p.Events)},
	}
}

// buildActivityArtifact builds the weekly/summary base artifact: filter
// events into the window, derive candidate cards, and keep only the ones
// that pass the contract. Rejections are silent; their reasons live only in
// the debug payload.
func buildActivityArtifact(p ComputeParams, scope model.WindowKind, loc *time.Location, now time.Time) *model.InsightArtifact {
	win := timewindow.Span(scope, p.WindowStart, p.WindowEnd)
	events := timewindow.Filter(p.Events, win)
	days := timewindow.GroupByDay(events, loc)

	cards, rejected := buildCards(events, days, scope, loc, now)

	debug := &model.ArtifactDebug{
		EventCount:    len(events),
		ActiveDays:    len(days),
		RejectedCards: rejected,
	}
	for i, d := range days {
		if i == 3 {
			break
		}
		debug.SampleDays = append(debug.SampleDays, d.Day)
	}

	return &model.InsightArtifact{
		Horizon:     p.Horizon,
		WindowKind:  scope,
		WindowStart: p.WindowStart,
		WindowEnd:   p.WindowEnd,
		CreatedAt:   now,
		Cards:       cards,
		Debug:       debug,
	}
}
