package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/user-directory/internal/domain"
)

// MemoryStore holds the collection in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	users domain.Collection
}

// NewMemoryStore seeds a store with a copy of users.
func NewMemoryStore(users domain.Collection) *MemoryStore {
	return &MemoryStore{users: users.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, users domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users.Clone()
	return nil
}
