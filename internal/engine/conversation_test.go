package engine

import (
	"context"
	"testing"

	"github.com/rcliao/agentic-memory/internal/model"
)

func TestConversationAddTurn(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 100)
	conv := NewConversation(e)

	id, err := conv.AddTurn(ctx, "user", "my dog is named Biscuit")
	if err != nil {
		t.Fatalf("add turn: %v", err)
	}

	rec, err := e.store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Type != model.TypeEpisodic {
		t.Errorf("type = %s, want episodic", rec.Type)
	}
	if rec.Metadata["role"] != "user" {
		t.Errorf("role metadata = %q", rec.Metadata["role"])
	}

	results, _ := e.Recall(ctx, "Biscuit", 1)
	if len(results) != 1 || results[0].Record.ID != id {
		t.Error("turn not recallable by its content")
	}
}

func TestConversationRequiresRole(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 100)
	conv := NewConversation(e)

	if _, err := conv.AddTurn(ctx, "", "content"); err == nil {
		t.Error("expected error for empty role")
	}
}

func TestKnowledgeAddFact(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 100)
	kb := NewKnowledge(e)

	id, err := kb.AddFact(ctx, "the capital of France is Paris", 0.95)
	if err != nil {
		t.Fatalf("add fact: %v", err)
	}

	rec, _ := e.store.Get(ctx, id)
	if rec.Type != model.TypeSemantic {
		t.Errorf("type = %s, want semantic", rec.Type)
	}
	if rec.Importance != model.ImportanceCritical {
		t.Errorf("importance = %s, want critical for 0.95 confidence", rec.Importance)
	}
	if rec.Metadata["confidence"] != "0.95" {
		t.Errorf("confidence metadata = %q", rec.Metadata["confidence"])
	}
}

func TestKnowledgeConfidenceMapping(t *testing.T) {
	tests := []struct {
		confidence float64
		want       model.Importance
	}{
		{0.1, model.ImportanceLow},
		{0.4, model.ImportanceMedium},
		{0.7, model.ImportanceHigh},
		{0.9, model.ImportanceCritical},
		{1.0, model.ImportanceCritical},
	}
	for _, tt := range tests {
		if got := importanceForConfidence(tt.confidence); got != tt.want {
			t.Errorf("confidence %v -> %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestKnowledgeRejectsOutOfRangeConfidence(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 100)
	kb := NewKnowledge(e)

	for _, c := range []float64{-0.1, 1.5} {
		if _, err := kb.AddFact(ctx, "fact", c); err == nil {
			t.Errorf("expected error for confidence %v", c)
		}
	}
}
