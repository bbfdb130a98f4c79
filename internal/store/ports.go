// Package store defines the record store port. The core never touches
// persistence; it receives record snapshots loaded through this
// interface and the service layer writes mutations back through it.
package store

import (
	"context"
	"errors"

	"gastos/internal/core"
)

// ErrNotFound is returned by Update and Remove when no record has the
// given id.
var ErrNotFound = errors.New("record not found")

// RecordStore holds the full expense record set. Implementations own id
// uniqueness; conflicting writes resolve last-write-wins.
type RecordStore interface {
	// LoadAll returns a snapshot of every record. Callers own the
	// returned slice.
	LoadAll(ctx context.Context) ([]core.Record, error)

	// SaveAll replaces the whole record set wholesale.
	SaveAll(ctx context.Context, records []core.Record) error

	// Add appends one record.
	Add(ctx context.Context, r core.Record) error

	// Update replaces the record with r.ID by r.
	Update(ctx context.Context, r core.Record) error

	// Remove deletes the record with the given id.
	Remove(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
