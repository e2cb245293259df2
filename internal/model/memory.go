// Package model defines the core memory data types.
package model

import (
	"fmt"
	"time"
)

// MemoryType classifies what kind of knowledge a record holds.
// It is a closed tag supplied by the caller at creation, never inferred.
type MemoryType string

const (
	TypeEpisodic   MemoryType = "episodic"
	TypeSemantic   MemoryType = "semantic"
	TypeProcedural MemoryType = "procedural"
	TypeWorking    MemoryType = "working"
)

// ValidTypes are the allowed memory types.
var ValidTypes = map[MemoryType]bool{
	TypeEpisodic:   true,
	TypeSemantic:   true,
	TypeProcedural: true,
	TypeWorking:    true,
}

// Importance is an ordinal priority level, used numerically in scoring.
type Importance int

const (
	ImportanceLow      Importance = 1
	ImportanceMedium   Importance = 2
	ImportanceHigh     Importance = 3
	ImportanceCritical Importance = 4
)

// Valid reports whether the importance is one of the four defined levels.
func (i Importance) Valid() bool {
	return i >= ImportanceLow && i <= ImportanceCritical
}

func (i Importance) String() string {
	switch i {
	case ImportanceLow:
		return "low"
	case ImportanceMedium:
		return "medium"
	case ImportanceHigh:
		return "high"
	case ImportanceCritical:
		return "critical"
	}
	return fmt.Sprintf("importance(%d)", int(i))
}

// ParseImportance converts a level name to its Importance value.
func ParseImportance(s string) (Importance, error) {
	switch s {
	case "low":
		return ImportanceLow, nil
	case "medium", "normal":
		return ImportanceMedium, nil
	case "high":
		return ImportanceHigh, nil
	case "critical":
		return ImportanceCritical, nil
	}
	return 0, fmt.Errorf("unknown importance %q (use low, medium, high, critical)", s)
}

// MemoryRecord is one stored unit of agent knowledge.
//
// CreatedAt is fixed at construction. LastAccessedAt and AccessCount are
// updated on every successful read of the record and are the only fields
// mutated after creation.
type MemoryRecord struct {
	ID             string            `json:"id"`
	Content        string            `json:"content"`
	Type           MemoryType        `json:"memory_type"`
	Importance     Importance        `json:"importance"`
	Embedding      []float32         `json:"embedding"`
	Metadata       map[string]string `json:"metadata"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	AccessCount    int               `json:"access_count"`
}

// Clone returns a deep copy so callers can never mutate store-owned state.
func (m *MemoryRecord) Clone() *MemoryRecord {
	c := *m
	if m.Embedding != nil {
		c.Embedding = make([]float32, len(m.Embedding))
		copy(c.Embedding, m.Embedding)
	}
	if m.Metadata != nil {
		c.Metadata = make(map[string]string, len(m.Metadata))
		for k, v := range m.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
