// Package store provides the training entry storage interface and its JSON file implementation.
package store

import (
	"context"

	"github.com/rcliao/training-journal/internal/model"
)

// AddParams holds parameters for logging a set.
type AddParams struct {
	Exercise    string
	Weight      string
	Repetitions string
	Date        string // optional; empty means now
}

// UpdateParams holds parameters for changing an entry. Nil fields are left as they are.
type UpdateParams struct {
	ID          int
	Exercise    *string
	Weight      *string
	Repetitions *string
	Date        *string
}

// FilterParams selects entries by date range and exercise.
type FilterParams struct {
	Start    string // YYYY-MM-DD, inclusive, optional
	End      string // YYYY-MM-DD, inclusive, optional
	Exercise string // exact match, optional
	Limit    int    // keep the newest N; 0 means all
}

// Store defines the training entry storage interface.
type Store interface {
	// Load returns every persisted entry in insertion order.
	// A missing or unreadable file yields an empty slice.
	Load(ctx context.Context) ([]model.Entry, error)

	// Save replaces the persisted sequence with entries.
	Save(ctx context.Context, entries []model.Entry) error

	// Add validates and appends a new entry. Returns the stored entry.
	Add(ctx context.Context, p AddParams) (*model.Entry, error)

	// AddBatch validates every row, then appends all of them with a single write.
	AddBatch(ctx context.Context, rows []AddParams) ([]model.Entry, error)

	// Get returns the entry with the given id.
	Get(ctx context.Context, id int) (*model.Entry, error)

	// Update replaces fields of an existing entry.
	Update(ctx context.Context, p UpdateParams) (*model.Entry, error)

	// Delete removes the entry with the given id.
	Delete(ctx context.Context, id int) error

	// List loads and filters entries.
	List(ctx context.Context, p FilterParams) ([]model.Entry, error)
}
