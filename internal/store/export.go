package store

import (
	"context"

	"github.com/quillt/insight-engine/internal/model"
)

// Export bundles a journal's caller-owned state: its entries and its
// pattern snapshot memory. Artifacts are recomputable and not exported.
type Export struct {
	Journal   string                  `json:"journal"`
	Entries   []model.Entry           `json:"entries"`
	Snapshots []model.PatternSnapshot `json:"snapshots"`
}

// ExportAll returns all non-deleted entries and snapshots, optionally
// filtered by journal.
func (s *SQLiteStore) ExportAll(ctx context.Context, journal string) (*Export, error) {
	entries, err := s.List(ctx, ListParams{Journal: journal, Limit: 1000000})
	if err != nil {
		return nil, err
	}

	out := &Export{Journal: journal, Entries: entries}
	if journal != "" {
		snaps, err := s.LoadSnapshots(ctx, journal)
		if err != nil {
			return nil, err
		}
		out.Snapshots = snaps
	}
	return out, nil
}

// Import stores entries and snapshots from an export. Entries keep their
// timestamps but get fresh ids; snapshots upsert by pattern id.
func (s *SQLiteStore) Import(ctx context.Context, ex *Export) (int, error) {
	imported := 0
	for _, e := range ex.Entries {
		journal := e.Journal
		if journal == "" {
			journal = ex.Journal
		}
		_, err := s.Add(ctx, AddParams{
			Journal:   journal,
			Plaintext: e.Plaintext,
			CreatedAt: e.CreatedAt,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}

	if len(ex.Snapshots) > 0 && ex.Journal != "" {
		if err := s.SaveSnapshots(ctx, ex.Journal, ex.Snapshots); err != nil {
			return imported, err
		}
	}
	return imported, nil
}
