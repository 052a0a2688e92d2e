// Package store defines the port every expense store backend implements.
package store

import (
	"context"

	"github.com/TeemuStew/expense-tracker/internal/core"
)

// Store owns the authoritative, mutable expense record set. Each call is
// atomic on its own: ListAll never observes a half-applied update or a
// half-deleted record, and a failed write leaves the prior record intact.
// There is no transaction spanning multiple calls.
//
// Writes validate before touching storage and fail with *core.ValidationError
// or *core.NotFoundError; storage faults are wrapped and surfaced, never
// swallowed or retried here.
type Store interface {
	// Create assigns a fresh id, stores the record, and returns the id.
	// Ids are monotonic and never reused, even after deletion.
	Create(ctx context.Context, e core.Expense) (int64, error)

	// ListAll returns every record in insertion order (ascending by
	// creation). Side-effect free; calling it twice with no intervening
	// mutation yields identical results.
	ListAll(ctx context.Context) ([]core.Expense, error)

	// Update replaces all fields of the record with the given id. There is
	// no partial patch; e.ID is ignored in favor of id.
	Update(ctx context.Context, id int64, e core.Expense) error

	// Delete removes the record irrevocably.
	Delete(ctx context.Context, id int64) error
}
