package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rcliao/agentic-memory/internal/model"
)

func testRecord(id string) *model.MemoryRecord {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.MemoryRecord{
		ID:             id,
		Content:        "content of " + id,
		Type:           model.TypeSemantic,
		Importance:     model.ImportanceMedium,
		Metadata:       map[string]string{"source": "test"},
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

func TestVolatileSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewVolatileStore()

	if err := s.Save(ctx, testRecord("a")); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "content of a" {
		t.Errorf("content = %q", got.Content)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVolatileSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewVolatileStore()

	rec := testRecord("a")
	s.Save(ctx, rec)
	rec.Content = "updated"
	s.Save(ctx, rec)

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Fatalf("expected 1 record after overwrite, got %d", n)
	}
	got, _ := s.Get(ctx, "a")
	if got.Content != "updated" {
		t.Errorf("content = %q, want updated", got.Content)
	}
}

func TestVolatileDelete(t *testing.T) {
	ctx := context.Background()
	s := NewVolatileStore()

	s.Save(ctx, testRecord("a"))
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Idempotent miss: absent id fails every time, never silently succeeds
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat, got %v", err)
	}
}

func TestVolatileCallersGetCopies(t *testing.T) {
	ctx := context.Background()
	s := NewVolatileStore()

	rec := testRecord("a")
	rec.Embedding = []float32{1, 2, 3}
	s.Save(ctx, rec)

	// Mutating the saved-in record must not reach the store
	rec.Content = "mutated"
	rec.Embedding[0] = 99
	rec.Metadata["source"] = "mutated"

	got, _ := s.Get(ctx, "a")
	if got.Content != "content of a" || got.Embedding[0] != 1 || got.Metadata["source"] != "test" {
		t.Error("store state leaked through caller mutation after Save")
	}

	// Mutating a retrieved record must not reach the store either
	got.Content = "mutated again"
	got.Embedding[1] = 99

	again, _ := s.Get(ctx, "a")
	if again.Content != "content of a" || again.Embedding[1] != 2 {
		t.Error("store state leaked through caller mutation after Get")
	}

	all, _ := s.ListAll(ctx)
	all[0].Content = "mutated list"
	final, _ := s.Get(ctx, "a")
	if final.Content != "content of a" {
		t.Error("store state leaked through ListAll snapshot")
	}
}

func TestVolatileListAllOrder(t *testing.T) {
	ctx := context.Background()
	s := NewVolatileStore()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := testRecord(fmt.Sprintf("rec-%d", i))
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		rec.LastAccessedAt = rec.CreatedAt
		s.Save(ctx, rec)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3, got %d", len(all))
	}
	if all[0].ID != "rec-2" || all[2].ID != "rec-0" {
		t.Errorf("expected newest first, got %s .. %s", all[0].ID, all[2].ID)
	}
}

func TestVolatileConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewVolatileStore()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Save(ctx, testRecord(fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	n, _ := s.Count(ctx)
	if n != 200 {
		t.Errorf("expected 200 records, got %d", n)
	}
}
