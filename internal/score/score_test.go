package score

import (
	"math"
	"testing"
	"time"

	"github.com/rcliao/agentic-memory/internal/embedding"
	"github.com/rcliao/agentic-memory/internal/model"
)

func TestImportanceOrdering(t *testing.T) {
	levels := []model.Importance{
		model.ImportanceLow,
		model.ImportanceMedium,
		model.ImportanceHigh,
		model.ImportanceCritical,
	}
	for i := 1; i < len(levels); i++ {
		if Importance(levels[i]) <= Importance(levels[i-1]) {
			t.Errorf("expected %s > %s", levels[i], levels[i-1])
		}
	}
	if Importance(model.ImportanceLow) != 0.25 {
		t.Errorf("low = %f, want 0.25", Importance(model.ImportanceLow))
	}
	if Importance(model.ImportanceCritical) != 1.0 {
		t.Errorf("critical = %f, want 1.0", Importance(model.ImportanceCritical))
	}
}

func TestRecencyMonotonicity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	recent := Recency(now.Add(-1*time.Hour), now)
	older := Recency(now.Add(-24*time.Hour), now)
	if recent <= older {
		t.Errorf("expected recency(1h)=%f > recency(24h)=%f", recent, older)
	}

	if got := Recency(now, now); got != 1.0 {
		t.Errorf("zero age = %f, want 1.0", got)
	}
	// Future last-access clamps to zero age rather than scoring above 1
	if got := Recency(now.Add(time.Hour), now); got != 1.0 {
		t.Errorf("future access = %f, want 1.0", got)
	}
	if got := Recency(now.Add(-1*time.Hour), now); math.Abs(got-0.5) > 0.001 {
		t.Errorf("1h age = %f, want 0.5", got)
	}
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		content string
		want    float64
	}{
		{"full match", "python tips", "Python tips for beginners", 1.0},
		{"half match", "python rust", "all about Python", 0.5},
		{"no match", "kubernetes", "all about Python", 0.0},
		{"case insensitive", "PYTHON", "prefers python", 1.0},
		{"substring", "deploy", "deployment checklist", 1.0},
		{"empty query", "", "anything", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Keyword(tt.query, tt.content); math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Keyword(%q, %q) = %f, want %f", tt.query, tt.content, got, tt.want)
			}
		})
	}
}

func TestRelevanceEmbeddingPath(t *testing.T) {
	q := embedding.Vector{1, 0, 0}

	if got := Relevance(q, embedding.Vector{1, 0, 0}, "", ""); math.Abs(got-1.0) > 0.001 {
		t.Errorf("identical vectors = %f, want 1.0", got)
	}
	if got := Relevance(q, embedding.Vector{-1, 0, 0}, "", ""); math.Abs(got) > 0.001 {
		t.Errorf("opposite vectors = %f, want 0.0", got)
	}
	if got := Relevance(q, embedding.Vector{0, 1, 0}, "", ""); math.Abs(got-0.5) > 0.001 {
		t.Errorf("orthogonal vectors = %f, want 0.5", got)
	}
}

func TestRelevanceFallsBackToKeyword(t *testing.T) {
	// Missing embedding on either side must not panic and must use keywords
	got := Relevance(nil, nil, "python", "prefers Python")
	if got != 1.0 {
		t.Errorf("fallback = %f, want 1.0", got)
	}
	got = Relevance(embedding.Vector{1, 0}, nil, "python", "prefers Python")
	if got != 1.0 {
		t.Errorf("record without embedding = %f, want keyword score 1.0", got)
	}
}

func TestCombinedWeights(t *testing.T) {
	got := Combined(1, 1, 1)
	if math.Abs(got-1.0) > 0.001 {
		t.Errorf("Combined(1,1,1) = %f, want 1.0", got)
	}
	got = Combined(1, 0, 0)
	if math.Abs(got-0.4) > 0.001 {
		t.Errorf("relevance weight = %f, want 0.4", got)
	}
	got = Combined(0, 1, 0)
	if math.Abs(got-0.3) > 0.001 {
		t.Errorf("recency weight = %f, want 0.3", got)
	}
	got = Combined(0, 0, 1)
	if math.Abs(got-0.3) > 0.001 {
		t.Errorf("importance weight = %f, want 0.3", got)
	}
}
