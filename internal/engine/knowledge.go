package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rcliao/agentic-memory/internal/model"
)

// Knowledge ingests facts with a confidence weight into a shared engine.
// Confidence maps onto the importance ladder so well-attested facts
// outlive shaky ones under pruning.
type Knowledge struct {
	engine *Engine
}

// NewKnowledge wraps an engine with fact ingestion.
func NewKnowledge(e *Engine) *Knowledge {
	return &Knowledge{engine: e}
}

// AddFact stores a semantic fact. Confidence must be in [0,1] and is kept
// in metadata alongside the derived importance.
func (k *Knowledge) AddFact(ctx context.Context, fact string, confidence float64) (string, error) {
	if confidence < 0 || confidence > 1 {
		return "", fmt.Errorf("confidence %v out of range [0,1]", confidence)
	}
	return k.engine.Remember(ctx, fact, model.TypeSemantic, importanceForConfidence(confidence), map[string]string{
		"confidence": strconv.FormatFloat(confidence, 'f', 2, 64),
	})
}

func importanceForConfidence(c float64) model.Importance {
	switch {
	case c >= 0.9:
		return model.ImportanceCritical
	case c >= 0.7:
		return model.ImportanceHigh
	case c >= 0.4:
		return model.ImportanceMedium
	default:
		return model.ImportanceLow
	}
}

// Engine exposes the underlying engine for recall and context assembly.
func (k *Knowledge) Engine() *Engine { return k.engine }
