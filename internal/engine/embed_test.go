package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rcliao/agentic-memory/internal/embedding"
	"github.com/rcliao/agentic-memory/internal/model"
	"github.com/rcliao/agentic-memory/internal/store"
)

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	return nil, errors.New("provider unreachable")
}

func (failingEmbedder) Dims() int { return 0 }

func TestRememberStoresEmbedding(t *testing.T) {
	ctx := context.Background()
	e := New(store.NewVolatileStore(), Config{
		MaxMemories: 100,
		Embedder:    embedding.NewHashEmbedder(32),
	})

	id, err := e.Remember(ctx, "prefers Python", model.TypeSemantic, model.ImportanceHigh, nil)
	if err != nil {
		t.Fatalf("remember: %v", err)
	}
	rec, _ := e.store.Get(ctx, id)
	if len(rec.Embedding) != 32 {
		t.Errorf("embedding dims = %d, want 32", len(rec.Embedding))
	}
}

func TestRecallWithEmbeddingsRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	e := New(store.NewVolatileStore(), Config{
		MaxMemories: 100,
		Embedder:    embedding.NewHashEmbedder(0),
	})

	matchID, _ := e.Remember(ctx, "python virtualenv setup notes", model.TypeSemantic, model.ImportanceMedium, nil)
	e.Remember(ctx, "quarterly sales forecast", model.TypeSemantic, model.ImportanceMedium, nil)

	results, err := e.Recall(ctx, "python virtualenv", 2)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if results[0].Record.ID != matchID {
		t.Errorf("expected embedding match first, got %q", results[0].Record.Content)
	}
	if results[0].Relevance <= results[1].Relevance {
		t.Errorf("relevance %f should exceed %f", results[0].Relevance, results[1].Relevance)
	}
}

func TestEmbedderFailureDegradesToKeyword(t *testing.T) {
	ctx := context.Background()
	e := New(store.NewVolatileStore(), Config{
		MaxMemories: 100,
		Embedder:    failingEmbedder{},
	})

	// Write path: record is stored without a vector, not rejected
	id, err := e.Remember(ctx, "prefers Python", model.TypeSemantic, model.ImportanceHigh, nil)
	if err != nil {
		t.Fatalf("remember with failing embedder: %v", err)
	}
	rec, _ := e.store.Get(ctx, id)
	if rec.Embedding != nil {
		t.Error("expected no embedding when provider fails")
	}

	// Read path: keyword fallback still ranks the record
	results, err := e.Recall(ctx, "python", 1)
	if err != nil {
		t.Fatalf("recall with failing embedder: %v", err)
	}
	if len(results) != 1 || results[0].Relevance != 1.0 {
		t.Errorf("expected keyword relevance 1.0, got %+v", results)
	}
}
