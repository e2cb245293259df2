// Package store provides the memory persistence interface and its
// in-process, file-backed, and SQLite-backed implementations.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcliao/agentic-memory/internal/model"
)

// ErrNotFound is returned when a requested memory id is absent.
var ErrNotFound = errors.New("memory not found")

// CorruptionError means a persistent backend failed to parse its existing
// data at open time. The engine must not start against a corrupt store.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupt memory store at %s: %v", e.Path, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// Store is durable or ephemeral key-value persistence for memory records.
//
// All operations are atomic with respect to concurrent callers: Save, Delete,
// and any sweep built on them hold an exclusive lock for their duration, and
// ListAll returns a snapshot, never a live view. Save of an existing id
// replaces the record in place with no history of the prior value.
type Store interface {
	Save(ctx context.Context, rec *model.MemoryRecord) error

	// Get returns a copy of the record, or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (*model.MemoryRecord, error)

	// Delete removes the record, or returns an error wrapping ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ListAll returns a snapshot of every record, newest created first.
	ListAll(ctx context.Context) ([]*model.MemoryRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	Close() error
}
