package engine

import (
	"context"
	"time"
)

// Stats summarizes the stored record set.
type Stats struct {
	Total        int            `json:"total"`
	MaxMemories  int            `json:"max_memories"`
	ByType       map[string]int `json:"by_type"`
	ByImportance map[string]int `json:"by_importance"`
	OldestAt     *time.Time     `json:"oldest_at,omitempty"`
	NewestAt     *time.Time     `json:"newest_at,omitempty"`
}

// Stats computes counts by type and importance plus the age span.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	recs, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Total:        len(recs),
		MaxMemories:  e.maxMemories,
		ByType:       map[string]int{},
		ByImportance: map[string]int{},
	}
	for _, rec := range recs {
		st.ByType[string(rec.Type)]++
		st.ByImportance[rec.Importance.String()]++
		if st.OldestAt == nil || rec.CreatedAt.Before(*st.OldestAt) {
			t := rec.CreatedAt
			st.OldestAt = &t
		}
		if st.NewestAt == nil || rec.CreatedAt.After(*st.NewestAt) {
			t := rec.CreatedAt
			st.NewestAt = &t
		}
	}
	return st, nil
}
