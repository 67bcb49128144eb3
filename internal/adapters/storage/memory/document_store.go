package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/PabloGalante/planforge/internal/domain"
)

// DocumentStore is an in-memory domain.DocumentStore.
// It is NOT persistent and is only suitable for development / local mode.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]map[string]any),
	}
}

// Upsert merges fields into the stored document. Nested maps merge key by
// key; any other value, slices included, replaces what was there.
func (s *DocumentStore) Upsert(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[collection] = docs
	}

	doc, ok := docs[id]
	if !ok {
		doc = make(map[string]any, len(fields))
		docs[id] = doc
	}
	merge(doc, fields)
	return nil
}

func (s *DocumentStore) Get(_ context.Context, collection, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return &domain.Document{ID: id, Fields: cloneMap(doc)}, nil
}

// ListByField returns documents whose field equals value, most recently
// updated first. If limit <= 0, returns all.
func (s *DocumentStore) ListByField(_ context.Context, collection, field string, value any, limit int) ([]*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Document{}
	for id, doc := range s.collections[collection] {
		if v, ok := doc[field]; ok && v == value {
			out = append(out, &domain.Document{ID: id, Fields: cloneMap(doc)})
		}
	}

	slices.SortFunc(out, func(a, b *domain.Document) int {
		ta, _ := a.Fields["updated_at"].(time.Time)
		tb, _ := b.Fields["updated_at"].(time.Time)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *DocumentStore) Ping(context.Context) error {
	return nil
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
