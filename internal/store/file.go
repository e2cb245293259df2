package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rcliao/agentic-memory/internal/model"
)

// knownFields are the record fields this version writes itself. Anything
// else found in the file is carried through untouched so newer writers can
// add fields without older readers dropping them.
var knownFields = map[string]bool{
	"id":               true,
	"content":          true,
	"memory_type":      true,
	"importance":       true,
	"embedding":        true,
	"metadata":         true,
	"created_at":       true,
	"last_accessed_at": true,
	"access_count":     true,
}

// FileStore persists the whole record set as one JSON array on disk.
// Every mutation rewrites the document to a temp file and renames it over
// the target, so a crash mid-write leaves the previous document intact.
// Reads are served from an in-memory mirror loaded at open time.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	recs  map[string]*model.MemoryRecord
	extra map[string]map[string]json.RawMessage
}

// NewFileStore opens the store at path, loading an existing document if one
// is present. A missing file is an empty store; an unparseable file is a
// CorruptionError rather than silent truncation.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &FileStore{
		path:  path,
		recs:  make(map[string]*model.MemoryRecord),
		extra: make(map[string]map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return &CorruptionError{Path: s.path, Err: err}
	}

	for _, raw := range raws {
		var rec model.MemoryRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return &CorruptionError{Path: s.path, Err: err}
		}
		if rec.ID == "" {
			return &CorruptionError{Path: s.path, Err: fmt.Errorf("record without id")}
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return &CorruptionError{Path: s.path, Err: err}
		}
		for k := range fields {
			if knownFields[k] {
				delete(fields, k)
			}
		}

		s.recs[rec.ID] = &rec
		if len(fields) > 0 {
			s.extra[rec.ID] = fields
		}
	}
	return nil
}

func (s *FileStore) Save(ctx context.Context, rec *model.MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.recs[rec.ID]
	s.recs[rec.ID] = rec.Clone()
	if err := s.flush(); err != nil {
		// Keep the mirror consistent with what is actually on disk.
		if existed {
			s.recs[rec.ID] = prev
		} else {
			delete(s.recs, rec.ID)
		}
		return err
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*model.MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.recs[id]
	if !ok {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	delete(s.recs, id)
	if err := s.flush(); err != nil {
		s.recs[id] = prev
		return err
	}
	delete(s.extra, id)
	return nil
}

func (s *FileStore) ListAll(ctx context.Context) ([]*model.MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.recs), nil
}

func (s *FileStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs), nil
}

func (s *FileStore) Close() error { return nil }

// flush serializes the whole document and atomically replaces the target.
// Caller must hold the write lock.
func (s *FileStore) flush() error {
	docs := make([]json.RawMessage, 0, len(s.recs))
	for _, rec := range snapshot(s.recs) {
		raw, err := s.encode(rec)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		docs = append(docs, raw)
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".memories-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// encode marshals one record, merging back any unknown fields loaded with it.
func (s *FileStore) encode(rec *model.MemoryRecord) (json.RawMessage, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	extra := s.extra[rec.ID]
	if len(extra) == 0 {
		return raw, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := fields[k]; !taken {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}
