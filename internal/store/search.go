package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillt/insight-engine/internal/model"
)

// SearchParams holds parameters for searching entries.
type SearchParams struct {
	Journal string
	Query   string
	Limit   int
}

// Search finds entries whose plaintext matches the query substring. Plain
// LIKE on the caller-owned entries table; journal text is not indexed
// beyond this.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Entry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"deleted_at IS NULL", "plaintext LIKE ?"}
	args := []interface{}{"%" + p.Query + "%"}

	if p.Journal != "" {
		where = append(where, "journal = ?")
		args = append(args, p.Journal)
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
