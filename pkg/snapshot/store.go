package snapshot

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/anchor/pkg/errors"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Store persists snapshots.
type Store interface {
	// Save stores s, replacing any snapshot with the same ID.
	Save(ctx context.Context, s *Snapshot) error
	// Get returns the snapshot with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Snapshot, error)
	// List returns the newest snapshots first, optionally restricted to one
	// scene. A non-positive limit means DefaultListLimit.
	List(ctx context.Context, scene string, limit int) ([]Summary, error)
	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "snapshot %q not found", id)
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*Snapshot
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*Snapshot)}
}

func (m *MemoryStore) Save(_ context.Context, s *Snapshot) error {
	if s == nil || s.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot needs an id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.items[id]
	if !ok {
		return nil, notFound(id)
	}
	return s, nil
}

func (m *MemoryStore) List(_ context.Context, scene string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	out := make([]Summary, 0, len(m.items))
	for _, s := range m.items {
		if scene == "" || s.Scene == scene {
			out = append(out, s.Summary())
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
