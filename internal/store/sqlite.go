package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/quillt/insight-engine/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id          TEXT PRIMARY KEY,
		journal     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		plaintext   TEXT NOT NULL,
		deleted_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_entries_journal_created ON entries(journal, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_deleted ON entries(deleted_at);

	CREATE TABLE IF NOT EXISTS snapshots (
		journal       TEXT NOT NULL,
		id            TEXT NOT NULL,
		kind          TEXT NOT NULL,
		first_seen    TEXT NOT NULL,
		last_seen     TEXT NOT NULL,
		occurrences   INTEGER NOT NULL,
		last_strength REAL,
		windows       TEXT NOT NULL,
		PRIMARY KEY (journal, id)
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		id           TEXT PRIMARY KEY,
		journal      TEXT NOT NULL,
		horizon      TEXT NOT NULL,
		window_start TEXT NOT NULL,
		window_end   TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		payload      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_artifacts_journal_created ON artifacts(journal, created_at DESC);

	CREATE TABLE IF NOT EXISTS artifact_patterns (
		artifact_id TEXT NOT NULL REFERENCES artifacts(id),
		pattern_id  TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (artifact_id, pattern_id)
	);
	CREATE INDEX IF NOT EXISTS idx_artifact_patterns_pattern ON artifact_patterns(pattern_id);

	CREATE TABLE IF NOT EXISTS dwell_state (
		journal       TEXT PRIMARY KEY,
		regime        TEXT NOT NULL,
		entry_ts      TEXT NOT NULL,
		session_start TEXT NOT NULL,
		dwell_ms      INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Add(ctx context.Context, p AddParams) (*model.Entry, error) {
	if strings.TrimSpace(p.Plaintext) == "" {
		return nil, fmt.Errorf("add: plaintext is required")
	}
	journal := p.Journal
	if journal == "" {
		journal = "default"
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	id := s.newID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, journal, created_at, plaintext) VALUES (?, ?, ?, ?)`,
		id, journal, createdAt.UTC().Format(time.RFC3339), p.Plaintext)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return &model.Entry{
		ID:        id,
		Journal:   journal,
		CreatedAt: createdAt.UTC(),
		Plaintext: p.Plaintext,
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, journal, created_at, plaintext, deleted_at FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Entry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}

	where := []string{"1=1"}
	args := []interface{}{}

	if !p.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if p.Journal != "" {
		where = append(where, "journal = ?")
		args = append(args, p.Journal)
	}
	if !p.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, p.Since.UTC().Format(time.RFC3339))
	}
	if !p.Until.IsZero() {
		where = append(where, "created_at < ?")
		args = append(args, p.Until.UTC().Format(time.RFC3339))
	}

	query := fmt.Sprintf(`
		SELECT id, journal, created_at, plaintext, deleted_at
		FROM entries WHERE %s
		ORDER BY created_at DESC
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	if p.Hard {
		res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, p.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, p.ID)
		}
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, p.ID)
	}
	return nil
}

// LoadSnapshots returns the persisted snapshot set for a journal, ordered
// by first appearance.
func (s *SQLiteStore) LoadSnapshots(ctx context.Context, journal string) ([]model.PatternSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, first_seen, last_seen, occurrences, last_strength, windows
		 FROM snapshots WHERE journal = ? ORDER BY first_seen, id`, journal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []model.PatternSnapshot
	for rows.Next() {
		var snap model.PatternSnapshot
		var firstSeen, lastSeen, windowsJSON string
		var strength sql.NullFloat64
		if err := rows.Scan(&snap.ID, &snap.Kind, &firstSeen, &lastSeen,
			&snap.Occurrences, &strength, &windowsJSON); err != nil {
			return nil, err
		}
		snap.FirstSeen, _ = time.Parse(time.RFC3339, firstSeen)
		snap.LastSeen, _ = time.Parse(time.RFC3339, lastSeen)
		if strength.Valid {
			v := strength.Float64
			snap.LastStrength = &v
		}
		json.Unmarshal([]byte(windowsJSON), &snap.Windows)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// SaveSnapshots upserts the full snapshot set for a journal. Snapshot
// memory only grows, so rows are never deleted here.
func (s *SQLiteStore) SaveSnapshots(ctx context.Context, journal string, snaps []model.PatternSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, snap := range snaps {
		windowsJSON, _ := json.Marshal(snap.Windows)
		var strength interface{}
		if snap.LastStrength != nil {
			strength = *snap.LastStrength
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (journal, id, kind, first_seen, last_seen, occurrences, last_strength, windows)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (journal, id) DO UPDATE SET
			   last_seen = excluded.last_seen,
			   occurrences = excluded.occurrences,
			   last_strength = excluded.last_strength,
			   windows = excluded.windows`,
			journal, snap.ID, snap.Kind,
			snap.FirstSeen.UTC().Format(time.RFC3339),
			snap.LastSeen.UTC().Format(time.RFC3339),
			snap.Occurrences, strength, string(windowsJSON))
		if err != nil {
			return fmt.Errorf("upsert snapshot %s: %w", snap.ID, err)
		}
	}

	return tx.Commit()
}

// SaveDwell persists the regime dwell state for a journal.
func (s *SQLiteStore) SaveDwell(ctx context.Context, journal string, st model.RegimeDwellState) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dwell_state (journal, regime, entry_ts, session_start, dwell_ms)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (journal) DO UPDATE SET
		   regime = excluded.regime,
		   entry_ts = excluded.entry_ts,
		   session_start = excluded.session_start,
		   dwell_ms = excluded.dwell_ms`,
		journal, st.CurrentRegime,
		st.EntryTimestamp.UTC().Format(time.RFC3339),
		st.SessionStart.UTC().Format(time.RFC3339),
		st.DwellDuration.Milliseconds())
	return err
}

// LoadDwell returns the persisted dwell state for a journal, if any.
func (s *SQLiteStore) LoadDwell(ctx context.Context, journal string) (*model.RegimeDwellState, error) {
	var st model.RegimeDwellState
	var entryTS, sessionStart string
	var dwellMS int64
	err := s.db.QueryRowContext(ctx,
		`SELECT regime, entry_ts, session_start, dwell_ms FROM dwell_state WHERE journal = ?`,
		journal).Scan(&st.CurrentRegime, &entryTS, &sessionStart, &dwellMS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	st.EntryTimestamp, _ = time.Parse(time.RFC3339, entryTS)
	st.SessionStart, _ = time.Parse(time.RFC3339, sessionStart)
	st.DwellDuration = time.Duration(dwellMS) * time.Millisecond
	return &st, nil
}

// ListJournals returns the distinct journal names with active entries.
func (s *SQLiteStore) ListJournals(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT journal FROM entries WHERE deleted_at IS NULL ORDER BY journal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []string
	for rows.Next() {
		var j string
		if err := rows.Scan(&j); err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&e.ID, &e.Journal, &createdAt, &e.Plaintext, &deletedAt); err != nil {
		return e, err
	}

	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String)
		e.DeletedAt = &t
	}
	return e, nil
}
