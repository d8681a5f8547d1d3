// Package store provides the host-side persistence the engine itself
// refuses to own: journal entries, pattern snapshots, computed artifacts,
// and regime dwell state, all in a single SQLite file.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/quillt/insight-engine/internal/model"
)

// ErrEntryNotFound is returned when an entry id does not exist.
var ErrEntryNotFound = errors.New("entry not found")

// AddParams holds parameters for storing a journal entry.
type AddParams struct {
	Journal   string
	Plaintext string
	CreatedAt time.Time // zero means now
}

// ListParams holds parameters for listing entries.
type ListParams struct {
	Journal        string
	Since          time.Time // zero means unbounded
	Until          time.Time // zero means unbounded
	IncludeDeleted bool
	Limit          int
}

// RmParams holds parameters for deleting an entry.
type RmParams struct {
	ID   string
	Hard bool
}

// Store defines the entry storage interface. Snapshot, artifact, and dwell
// persistence live on the concrete SQLiteStore.
type Store interface {
	// Add stores a journal entry and returns it with its assigned id.
	Add(ctx context.Context, p AddParams) (*model.Entry, error)

	// Get retrieves an entry by id, including soft-deleted ones.
	Get(ctx context.Context, id string) (*model.Entry, error)

	// List lists entries matching the given filters, newest first.
	List(ctx context.Context, p ListParams) ([]model.Entry, error)

	// Rm soft-deletes (or hard-deletes) an entry.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
