// Package engine orchestrates memory storage, scoring, retrieval ranking,
// and capacity-triggered pruning.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/agentic-memory/internal/embedding"
	"github.com/rcliao/agentic-memory/internal/model"
	"github.com/rcliao/agentic-memory/internal/score"
	"github.com/rcliao/agentic-memory/internal/store"
)

// DefaultMaxMemories bounds the store when Config.MaxMemories is unset.
const DefaultMaxMemories = 1000

// ErrEmptyQuery is returned when Recall is asked for a non-positive number
// of results. It signals a programming error, not a miss.
var ErrEmptyQuery = errors.New("recall limit must be positive")

// Config holds the engine's construction-time options. The zero value gives
// a wall-clock, embedding-less engine bounded at DefaultMaxMemories.
type Config struct {
	// MaxMemories is the capacity bound enforced after every Remember.
	MaxMemories int

	// Embedder, when set, embeds content at write time and queries at
	// recall time. When nil, relevance uses keyword overlap only.
	Embedder embedding.Embedder

	// Clock overrides the time source. Defaults to time.Now.
	Clock func() time.Time

	// Logger receives retrieval and pruning events. Defaults to discard.
	Logger *slog.Logger
}

// Engine ranks and evicts memories over a Store. One engine instance owns
// the capacity bound of its store; create it once and share it.
type Engine struct {
	store       store.Store
	embedder    embedding.Embedder
	clock       func() time.Time
	logger      *slog.Logger
	maxMemories int

	// mu serializes the save-then-prune sequence so concurrent Remember
	// calls cannot leave the store over its bound.
	mu sync.Mutex
}

// New creates an engine over the given store.
func New(st store.Store, cfg Config) *Engine {
	if cfg.MaxMemories <= 0 {
		cfg.MaxMemories = DefaultMaxMemories
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store:       st,
		embedder:    cfg.Embedder,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		maxMemories: cfg.MaxMemories,
	}
}

// Result wraps a record with its sub-scores for one query. Results are
// computed per recall and never persisted.
type Result struct {
	Record     model.MemoryRecord `json:"record"`
	Relevance  float64            `json:"relevance"`
	Recency    float64            `json:"recency"`
	Importance float64            `json:"importance"`
	Combined   float64            `json:"combined_score"`
}

// Remember stores content as a new memory and returns its id. When the
// store exceeds its capacity bound afterwards, the lowest-ranked records
// are pruned before Remember returns.
func (e *Engine) Remember(ctx context.Context, content string, typ model.MemoryType, imp model.Importance, metadata map[string]string) (string, error) {
	if !model.ValidTypes[typ] {
		return "", fmt.Errorf("invalid memory type %q", typ)
	}
	if !imp.Valid() {
		return "", fmt.Errorf("invalid importance %d", imp)
	}

	now := e.clock().UTC()
	rec := &model.MemoryRecord{
		ID:             ulid.Make().String(),
		Content:        content,
		Type:           typ,
		Importance:     imp,
		Metadata:       metadata,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]string{}
	}

	if e.embedder != nil {
		vec, err := e.embedder.Embed(ctx, content)
		if err != nil {
			// Designed degradation: the record is still stored and
			// recall falls back to keyword relevance for it.
			e.logger.Warn("embedding failed, storing without vector", "id", rec.ID, "err", err)
		} else {
			rec.Embedding = vec
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("save memory: %w", err)
	}
	if err := e.prune(ctx, now); err != nil {
		return "", fmt.Errorf("prune after save: %w", err)
	}
	return rec.ID, nil
}

// Recall returns up to k memories ranked against the query, best first.
// Every returned record has its access statistics advanced and persisted.
// An empty store yields an empty result set, not an error.
func (e *Engine) Recall(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("recall k=%d: %w", k, ErrEmptyQuery)
	}

	recs, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	if len(recs) == 0 {
		return []Result{}, nil
	}

	var queryVec embedding.Vector
	if e.embedder != nil {
		queryVec, err = e.embedder.Embed(ctx, query)
		if err != nil {
			e.logger.Warn("query embedding failed, using keyword relevance", "err", err)
			queryVec = nil
		}
	}

	now := e.clock().UTC()
	results := make([]Result, 0, len(recs))
	for _, rec := range recs {
		rel := score.Relevance(queryVec, rec.Embedding, query, rec.Content)
		rcy := score.Recency(rec.LastAccessedAt, now)
		imp := score.Importance(rec.Importance)
		results = append(results, Result{
			Record:     *rec,
			Relevance:  rel,
			Recency:    rcy,
			Importance: imp,
			Combined:   score.Combined(rel, rcy, imp),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Combined != results[j].Combined {
			return results[i].Combined > results[j].Combined
		}
		// Ties break newest first; ULIDs sort by creation time.
		if !results[i].Record.CreatedAt.Equal(results[j].Record.CreatedAt) {
			return results[i].Record.CreatedAt.After(results[j].Record.CreatedAt)
		}
		return results[i].Record.ID > results[j].Record.ID
	})

	if len(results) > k {
		results = results[:k]
	}

	// Access tracking: each update is individually atomic; the set of
	// updates is not required to be atomic with the read above.
	for i := range results {
		results[i].Record.AccessCount++
		results[i].Record.LastAccessedAt = now
		rec := results[i].Record
		if err := e.store.Save(ctx, &rec); err != nil {
			return nil, fmt.Errorf("update access stats for %s: %w", rec.ID, err)
		}
	}

	e.logger.Debug("recall", "candidates", len(recs), "returned", len(results))
	return results, nil
}

// Forget removes a memory by id. An absent id yields store.ErrNotFound,
// the first time and every time after.
func (e *Engine) Forget(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// List returns a snapshot of all stored memories, newest created first.
func (e *Engine) List(ctx context.Context) ([]*model.MemoryRecord, error) {
	return e.store.ListAll(ctx)
}

// prune deletes the lowest-ranked records until the store is back within
// the capacity bound. Ranking uses the current time with relevance fixed
// at zero: with no query, eviction is decided by recency and importance
// alone. Caller holds e.mu.
func (e *Engine) prune(ctx context.Context, now time.Time) error {
	count, err := e.store.Count(ctx)
	if err != nil {
		return err
	}
	if count <= e.maxMemories {
		return nil
	}

	recs, err := e.store.ListAll(ctx)
	if err != nil {
		return err
	}

	type victim struct {
		rec      *model.MemoryRecord
		combined float64
	}
	victims := make([]victim, 0, len(recs))
	for _, rec := range recs {
		combined := score.Combined(0, score.Recency(rec.LastAccessedAt, now), score.Importance(rec.Importance))
		victims = append(victims, victim{rec: rec, combined: combined})
	}
	sort.Slice(victims, func(i, j int) bool {
		if victims[i].combined != victims[j].combined {
			return victims[i].combined < victims[j].combined
		}
		// Equal scores evict the older record first.
		if !victims[i].rec.CreatedAt.Equal(victims[j].rec.CreatedAt) {
			return victims[i].rec.CreatedAt.Before(victims[j].rec.CreatedAt)
		}
		return victims[i].rec.ID < victims[j].rec.ID
	})

	evicted := 0
	for _, v := range victims {
		if count-evicted <= e.maxMemories {
			break
		}
		// A failed delete aborts the sweep; pruning is idempotent and
		// runs again on the next Remember.
		if err := e.store.Delete(ctx, v.rec.ID); err != nil {
			return err
		}
		evicted++
	}

	e.logger.Info("pruned memories", "evicted", evicted, "remaining", count-evicted, "bound", e.maxMemories)
	return nil
}
