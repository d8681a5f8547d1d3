package store

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

// DigestParams holds parameters for digest assembly.
type DigestParams struct {
	Journal string
	Budget  int // max chars in output
}

// DigestNarrative is a scored narrative in a digest.
type DigestNarrative struct {
	ArtifactID string           `json:"artifact_id"`
	Horizon    model.Horizon    `json:"horizon"`
	DeltaType  model.DeltaType  `json:"delta_type"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
	Score      float64          `json:"score"`
}

// DigestResult is the assembled digest response.
type DigestResult struct {
	Budget     int               `json:"budget"`
	Used       int               `json:"used"`
	Narratives []DigestNarrative `json:"narratives"`
}

// categoryWeight mirrors the selector's ranking: the more
// information-bearing the delta, the higher it scores in a digest.
var categoryWeight = map[model.DeltaType]float64{
	model.DeltaEmergent:      1.0,
	model.DeltaStrengthening: 0.85,
	model.DeltaPersistent:    0.7,
	model.DeltaStable:        0.4,
	model.DeltaFading:        0.25,
}

// Digest scores the narratives of recent artifacts by recency and category
// and greedily packs them into a character budget, newest and most
// information-bearing first.
func (s *SQLiteStore) Digest(ctx context.Context, p DigestParams) (*DigestResult, error) {
	budget := p.Budget
	if budget <= 0 {
		budget = 2000
	}

	artifacts, err := s.ListArtifacts(ctx, p.Journal, 20)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var candidates []DigestNarrative
	for _, sa := range artifacts {
		// Recency: exponential decay over artifact age in days.
		age := now.Sub(sa.Artifact.CreatedAt).Hours() / 24.0
		recency := math.Exp(-0.1 * age)

		for _, n := range sa.Artifact.Narratives {
			score := recency*0.5 + categoryWeight[n.DeltaType]*0.5
			candidates = append(candidates, DigestNarrative{
				ArtifactID: sa.ID,
				Horizon:    sa.Artifact.Horizon,
				DeltaType:  n.DeltaType,
				Title:      n.Title,
				Body:       n.Body,
				Score:      math.Round(score*100) / 100,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	result := &DigestResult{Budget: budget, Narratives: []DigestNarrative{}}
	used := 0
	for _, c := range candidates {
		size := len(c.Title) + len(c.Body)
		if used+size > budget {
			break
		}
		result.Narratives = append(result.Narratives, c)
		used += size
	}
	result.Used = used

	return result, nil
}
