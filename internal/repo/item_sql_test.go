package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/db"
)

func newSQLiteStore(t *testing.T) *SQLItemStore {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	store := NewSQLItemStore(conn, DialectSQLite)
	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

func TestSQLItemStore_SQLite(t *testing.T) {
	storeContract(t, newSQLiteStore(t))
}

func TestSQLItemStore_EnsureSchemaIsIdempotent(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.EnsureSchema(context.Background()))
}

func TestSQLItemStore_SaveRollsBackOnDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.Save(ctx, sampleItems()))

	dup := sampleItems()
	dup[1].ID = dup[0].ID
	require.Error(t, store.Save(ctx, dup))

	items, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2, "failed save must keep the previous collection")
}

func TestSQLItemStore_Rebind(t *testing.T) {
	pg := NewSQLItemStore(nil, DialectPostgres)
	assert.Equal(t, "SELECT $1, $2, $3", pg.rebind("SELECT ?, ?, ?"))

	my := NewSQLItemStore(nil, DialectMySQL)
	assert.Equal(t, "SELECT ?, ?", my.rebind("SELECT ?, ?"))
}

func TestOpen_SQLite(t *testing.T) {
	cfg := config.StorageConfig{
		Driver: "sqlite",
		SQL:    config.SQLStorageConfig{DSN: filepath.Join(t.TempDir(), "open.db")},
	}

	store, closer, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	storeContract(t, store)
}
