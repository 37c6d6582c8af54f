package memory

import (
	"context"
	"sync"

	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/pkg/domain"
)

// Store implements ports.ProjectStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the project in memory. Projects are kept in snapshot form so
// callers can never mutate stored state through a shared pointer.
func (s *Store) Save(ctx context.Context, projectID string, p *domain.Project) error {
	raw, err := store.Encode(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[projectID] = raw
	return nil
}

// Load retrieves the project from memory.
func (s *Store) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	s.mu.RLock()
	raw, ok := s.data[projectID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return store.Decode(raw)
}

// Delete removes the project.
func (s *Store) Delete(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, projectID)
	return nil
}

// List returns the ids of stored projects.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
