package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

// MemoryRepo is an in-memory repository used when no database is
// configured and in unit tests. Documents are copied on the way in and out.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*prd.Document
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*prd.Document), now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepo) Create(_ context.Context, doc *prd.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.CreatedAt = m.now()
	doc.UpdatedAt = doc.CreatedAt
	m.store[doc.ID] = doc.Clone()
	return doc.ID, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*prd.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return d.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) ListByOwner(_ context.Context, owner string) ([]*prd.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*prd.Document, 0)
	for _, d := range m.store {
		if d.Owner == owner {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, doc *prd.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[doc.ID]
	if !ok {
		return ErrNotFound
	}
	d.Title = doc.Title
	d.Markdown = doc.Markdown
	d.Content = doc.Content.Clone()
	d.UpdatedAt = m.now()
	doc.UpdatedAt = d.UpdatedAt
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
