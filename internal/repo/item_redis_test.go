package repo

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisItemStore(t *testing.T) {
	client := setupRedis(t)
	key := "inventory:test:" + t.Name()
	require.NoError(t, client.Del(context.Background(), key).Err())
	t.Cleanup(func() { client.Del(context.Background(), key) })

	storeContract(t, NewRedisItemStore(client, key))
}

func TestRedisItemStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedisItemStore(client, "").Load(context.Background())
	require.Error(t, err)
}
