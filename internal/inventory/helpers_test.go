package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
	"github.com/rogerio-castellano/smart-inventory/internal/repo"
)

type fixedRand struct{ n int }

func (r fixedRand) IntN(n int) int { return min(r.n, n-1) }

type failingStore struct {
	repo.ItemStore
	failLoad bool
	failSave bool
}

var errDisk = errors.New("disk full")

func (f *failingStore) Load(ctx context.Context) ([]models.InventoryItem, error) {
	if f.failLoad {
		return nil, errDisk
	}
	return f.ItemStore.Load(ctx)
}

func (f *failingStore) Save(ctx context.Context, items []models.InventoryItem) error {
	if f.failSave {
		return errDisk
	}
	return f.ItemStore.Save(ctx, items)
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []models.InventoryItem
}

func (n *recordingNotifier) LowStock(_ context.Context, item models.InventoryItem) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.items))
	for i, it := range n.items {
		out[i] = it.Name
	}
	return out
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*Service, *repo.InMemoryItemStore) {
	t.Helper()
	store := repo.NewInMemoryItemStore()
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithRand(fixedRand{n: 0}),
	}
	return New(store, append(base, opts...)...), store
}

func ptr[T any](v T) *T { return &v }
