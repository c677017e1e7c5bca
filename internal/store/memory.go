package store

import (
	"context"
	"sync"

	"frustration-list/internal/model"

	"github.com/google/uuid"
)

// MemoryStore keeps both collections in plain slices.
type MemoryStore struct {
	mu        sync.Mutex
	published []model.Item
	pending   []model.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Reset(_ context.Context, seed []model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append([]model.Item(nil), seed...)
	s.pending = nil
	return nil
}

func (s *MemoryStore) AddPending(_ context.Context, item *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append([]model.Item{*item}, s.pending...)
	return nil
}

func (s *MemoryStore) Publish(_ context.Context, id uuid.UUID) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.takePending(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.published = append([]model.Item{item}, s.published...)
	return &item, nil
}

func (s *MemoryStore) Discard(_ context.Context, id uuid.UUID) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.takePending(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// takePending removes id from pending. Caller holds mu.
func (s *MemoryStore) takePending(id uuid.UUID) (model.Item, bool) {
	for i, item := range s.pending {
		if item.ID == id {
			rest := make([]model.Item, 0, len(s.pending)-1)
			rest = append(rest, s.pending[:i]...)
			s.pending = append(rest, s.pending[i+1:]...)
			return item, true
		}
	}
	return model.Item{}, false
}

func (s *MemoryStore) Published(_ context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.published...), nil
}

func (s *MemoryStore) Pending(_ context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.pending...), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
