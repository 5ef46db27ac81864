package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

type InMemoryItemStore struct {
	mu    sync.RWMutex
	items []models.InventoryItem
}

func NewInMemoryItemStore(seed ...models.InventoryItem) *InMemoryItemStore {
	return &InMemoryItemStore{items: cloneItems(seed)}
}

func (s *InMemoryItemStore) Load(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items), nil
}

func (s *InMemoryItemStore) Save(_ context.Context, items []models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneItems(items)
	return nil
}

// Clear drops every stored item.
func (s *InMemoryItemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
