package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

// StoredArtifact wraps a computed artifact with its storage id.
type StoredArtifact struct {
	ID       string                `json:"id"`
	Journal  string                `json:"journal"`
	Artifact model.InsightArtifact `json:"artifact"`
}

// SaveArtifact persists a computed artifact as JSON and records which
// pattern ids contributed to it, so pattern history stays auditable without
// re-deriving anything.
func (s *SQLiteStore) SaveArtifact(ctx context.Context, journal string, art *model.InsightArtifact, patternIDs []string) (string, error) {
	payload, err := json.Marshal(art)
	if err != nil {
		return "", fmt.Errorf("marshal artifact: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := s.newID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO artifacts (id, journal, horizon, window_start, window_end, created_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, journal, art.Horizon,
		art.WindowStart.UTC().Format(time.RFC3339),
		art.WindowEnd.UTC().Format(time.RFC3339),
		art.CreatedAt.UTC().Format(time.RFC3339),
		string(payload))
	if err != nil {
		return "", fmt.Errorf("insert artifact: %w", err)
	}

	for _, pid := range patternIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO artifact_patterns (artifact_id, pattern_id, created_at)
			 VALUES (?, ?, ?)`, id, pid, now)
		if err != nil {
			return "", fmt.Errorf("link pattern %s: %w", pid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetArtifact loads one stored artifact by id.
func (s *SQLiteStore) GetArtifact(ctx context.Context, id string) (*StoredArtifact, error) {
	var sa StoredArtifact
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, journal, payload FROM artifacts WHERE id = ?`, id).
		Scan(&sa.ID, &sa.Journal, &payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artifact not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &sa.Artifact); err != nil {
		return nil, fmt.Errorf("unmarshal artifact %s: %w", id, err)
	}
	return &sa, nil
}

// ListArtifacts returns stored artifacts for a journal, newest first.
func (s *SQLiteStore) ListArtifacts(ctx context.Context, journal string, limit int) ([]StoredArtifact, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, journal, payload FROM artifacts WHERE journal = ?
		 ORDER BY created_at DESC LIMIT ?`, journal, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredArtifact
	for rows.Next() {
		var sa StoredArtifact
		var payload string
		if err := rows.Scan(&sa.ID, &sa.Journal, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &sa.Artifact); err != nil {
			return nil, fmt.Errorf("unmarshal artifact %s: %w", sa.ID, err)
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}

// PatternHistory returns the ids of stored artifacts a pattern contributed
// to, oldest first.
func (s *SQLiteStore) PatternHistory(ctx context.Context, patternID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ap.artifact_id FROM artifact_patterns ap
		 JOIN artifacts a ON a.id = ap.artifact_id
		 WHERE ap.pattern_id = ?
		 ORDER BY a.created_at`, patternID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
