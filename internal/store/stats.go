package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string         `json:"db_path"`
	DBSizeBytes    int64          `json:"db_size_bytes"`
	TotalEntries   int            `json:"total_entries"`
	ActiveEntries  int            `json:"active_entries"`
	TotalSnapshots int            `json:"total_snapshots"`
	TotalArtifacts int            `json:"total_artifacts"`
	Journals       []JournalStats `json:"journals"`
}

// JournalStats holds per-journal counts.
type JournalStats struct {
	Journal   string `json:"journal"`
	Entries   int    `json:"entries"`
	Snapshots int    `json:"snapshots"`
	Artifacts int    `json:"artifacts"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&st.TotalEntries)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE deleted_at IS NULL`).Scan(&st.ActiveEntries)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&st.TotalSnapshots)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artifacts`).Scan(&st.TotalArtifacts)

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.journal,
		       COUNT(*) AS entries,
		       (SELECT COUNT(*) FROM snapshots sn WHERE sn.journal = e.journal) AS snapshots,
		       (SELECT COUNT(*) FROM artifacts a WHERE a.journal = e.journal) AS artifacts
		FROM entries e WHERE e.deleted_at IS NULL
		GROUP BY e.journal ORDER BY entries DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var js JournalStats
		rows.Scan(&js.Journal, &js.Entries, &js.Snapshots, &js.Artifacts)
		st.Journals = append(st.Journals, js)
	}

	return st, nil
}
