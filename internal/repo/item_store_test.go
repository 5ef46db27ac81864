package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

func sampleItems() []models.InventoryItem {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.InventoryItem{
		{ID: "b", Name: "Widget", Quantity: 3, Category: "Parts", Status: models.StatusLowStock, CreatedAt: created, UpdatedAt: created},
		{ID: "a", Name: "Gadget", Quantity: 20, Category: "Tools", Description: "hand tool", Status: models.StatusInStock, CreatedAt: created, UpdatedAt: created.Add(time.Minute)},
	}
}

// storeContract exercises the behavior every ItemStore shares.
func storeContract(t *testing.T, store ItemStore) {
	t.Helper()
	ctx := context.Background()

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.Save(ctx, sampleItems()))

	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID, "stored order must be preserved")
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, sampleItems()[1].Description, items[1].Description)
	assert.True(t, sampleItems()[1].UpdatedAt.Equal(items[1].UpdatedAt))

	require.NoError(t, store.Save(ctx, items[1:]))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	require.NoError(t, store.Save(ctx, nil))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInMemoryItemStore(t *testing.T) {
	storeContract(t, NewInMemoryItemStore())
}

func TestInMemoryItemStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryItemStore(sampleItems()...)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	items[0].Name = "changed"

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Widget", again[0].Name)

	store.Clear()
	again, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestFileItemStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.json")
	storeContract(t, NewFileItemStore(path, zerolog.Nop()))
}

func TestFileItemStore_WritesIndentedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	store := NewFileItemStore(path, zerolog.Nop())

	require.NoError(t, store.Save(context.Background(), sampleItems()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[\n  {\n    \"id\": \"b\"")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "Low Stock", decoded[0]["status"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileItemStore_EmptySaveWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	store := NewFileItemStore(path, zerolog.Nop())

	require.NoError(t, store.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileItemStore_CorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	items, err := NewFileItemStore(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileItemStore_SaveFailsOnUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewFileItemStore(filepath.Join(blocker, "inventory.json"), zerolog.Nop())
	err := store.Save(context.Background(), sampleItems())
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, closer, err := Open(ctx, config.StorageConfig{Driver: "memory"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &InMemoryItemStore{}, store)
	require.NoError(t, closer())

	path := filepath.Join(t.TempDir(), "inventory.json")
	store, closer, err = Open(ctx, config.StorageConfig{Driver: "file", File: config.FileStorageConfig{Path: path}}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &FileItemStore{}, store)
	assert.Equal(t, path, store.(*FileItemStore).Path())
	require.NoError(t, closer())

	_, _, err = Open(ctx, config.StorageConfig{Driver: "etcd"}, zerolog.Nop())
	require.ErrorIs(t, err, ErrUnknownDriver)
}
