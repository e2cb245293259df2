// Package score implements the composite relevance/recency/importance model
// used to rank memories at recall time and to pick eviction victims.
//
// The weights are fixed constants of the model, not configuration: changing
// them changes retrieval behavior across every stored memory, so they only
// move with a model version bump.
package score

import (
	"strings"
	"time"

	"github.com/rcliao/agentic-memory/internal/embedding"
	"github.com/rcliao/agentic-memory/internal/model"
)

const (
	weightRelevance  = 0.4
	weightRecency    = 0.3
	weightImportance = 0.3
)

// Importance maps the four ordinal levels onto [0.25, 1.0].
func Importance(level model.Importance) float64 {
	if level < model.ImportanceLow {
		level = model.ImportanceLow
	}
	if level > model.ImportanceCritical {
		level = model.ImportanceCritical
	}
	return float64(level) / float64(model.ImportanceCritical)
}

// Recency is an inverse time-decay over hours since last access: 1/(1+age).
// Decay runs from the last access, not creation, so memories in the working
// set resist eviction. A last access in the future counts as zero age.
func Recency(lastAccessed, now time.Time) float64 {
	age := now.Sub(lastAccessed).Hours()
	if age < 0 {
		age = 0
	}
	return 1.0 / (1.0 + age)
}

// Relevance scores a record against a query. With embeddings on both sides it
// is cosine similarity rescaled from [-1,1] to [0,1]; otherwise it falls back
// to keyword overlap. The fallback is the default path, not an error path.
func Relevance(queryVec, recordVec embedding.Vector, query, content string) float64 {
	if len(queryVec) > 0 && len(recordVec) > 0 {
		return (embedding.CosineSimilarity(queryVec, recordVec) + 1) / 2
	}
	return Keyword(query, content)
}

// Keyword is the fraction of query terms present as case-insensitive
// substrings of the content, clamped to [0,1].
func Keyword(query, content string) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	matched := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched++
		}
	}
	s := float64(matched) / float64(len(terms))
	if s > 1 {
		s = 1
	}
	return s
}

// Combined is the weighted sum of the three sub-scores.
func Combined(relevance, recency, importance float64) float64 {
	return weightRelevance*relevance + weightRecency*recency + weightImportance*importance
}
