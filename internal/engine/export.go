package engine

import (
	"context"
	"fmt"

	"github.com/rcliao/agentic-memory/internal/model"
)

// Import loads previously exported records into the store, keeping their
// ids, timestamps, and access statistics. The capacity bound is enforced
// once after the batch. Returns the number of records saved.
func (e *Engine) Import(ctx context.Context, recs []*model.MemoryRecord) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	imported := 0
	for _, rec := range recs {
		if rec.ID == "" {
			return imported, fmt.Errorf("record %d: missing id", imported)
		}
		if !model.ValidTypes[rec.Type] {
			return imported, fmt.Errorf("record %s: invalid memory type %q", rec.ID, rec.Type)
		}
		if !rec.Importance.Valid() {
			return imported, fmt.Errorf("record %s: invalid importance %d", rec.ID, rec.Importance)
		}
		if rec.LastAccessedAt.Before(rec.CreatedAt) {
			rec = rec.Clone()
			rec.LastAccessedAt = rec.CreatedAt
		}
		if err := e.store.Save(ctx, rec); err != nil {
			return imported, fmt.Errorf("import %s: %w", rec.ID, err)
		}
		imported++
	}

	if err := e.prune(ctx, e.clock().UTC()); err != nil {
		return imported, fmt.Errorf("prune after import: %w", err)
	}
	return imported, nil
}
