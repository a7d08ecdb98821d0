package repository

import (
	"context"
	"sync"

	"github.com/tiernote/tiernote/internal/document"
)

// MemoryRepo is a mutex-guarded in-memory repository used for unit tests
// and deployments without MongoDB. Insertion is a single keyed write under
// the lock, so concurrent Adds can never clobber each other.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Document)}
}

// clone deep-copies a document so stored and returned values never share
// the content map or tag slice.
func clone(d *document.Document) *document.Document {
	cp := *d
	if d.Content != nil {
		cp.Content = make(map[document.Tier]string, len(d.Content))
		for k, v := range d.Content {
			cp.Content[k] = v
		}
	}
	cp.Tags = append([]string(nil), d.Tags...)
	return &cp
}

func (m *MemoryRepo) Add(_ context.Context, doc *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.store[doc.ID]; exists {
		return ErrDuplicateID
	}
	m.store[doc.ID] = clone(doc)
	return nil
}

func (m *MemoryRepo) GetByID(_ context.Context, id string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(d), nil
}

func (m *MemoryRepo) List(_ context.Context, f Filter) ([]*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Document, 0, len(m.store))
	for _, d := range m.store {
		if matches(d, f) {
			out = append(out, clone(d))
		}
	}
	return out, nil
}
