package engine

import (
	"context"
	"fmt"

	"github.com/rcliao/agentic-memory/internal/model"
)

// Conversation ingests dialogue turns into a shared engine. It adds no
// ranking or eviction behavior of its own; turns are ordinary episodic
// records tagged with the speaker.
type Conversation struct {
	engine *Engine
}

// NewConversation wraps an engine with dialogue ingestion.
func NewConversation(e *Engine) *Conversation {
	return &Conversation{engine: e}
}

// AddTurn stores one dialogue turn. Role is the speaker ("user",
// "assistant", ...), kept in metadata so recall matches on the words
// actually said.
func (c *Conversation) AddTurn(ctx context.Context, role, content string) (string, error) {
	if role == "" {
		return "", fmt.Errorf("turn role is required")
	}
	return c.engine.Remember(ctx, content, model.TypeEpisodic, model.ImportanceMedium, map[string]string{
		"role": role,
	})
}

// Engine exposes the underlying engine for recall and context assembly.
func (c *Conversation) Engine() *Engine { return c.engine }
