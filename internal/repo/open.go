package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/db"
	"github.com/rogerio-castellano/smart-inventory/internal/redissvc"
)

// Open builds the ItemStore selected by cfg.Driver. The returned closer
// releases any connection the store holds.
func Open(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (ItemStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "memory":
		return NewInMemoryItemStore(), noop, nil

	case "file":
		return NewFileItemStore(cfg.File.Path, logger), noop, nil

	case "postgres", "sqlite", "mysql":
		conn, err := db.Open(ctx, cfg.Driver, cfg.SQL.DSN)
		if err != nil {
			return nil, noop, err
		}
		store := NewSQLItemStore(conn, Dialect(cfg.Driver))
		if err := store.EnsureSchema(ctx); err != nil {
			_ = conn.Close()
			return nil, noop, err
		}
		return store, conn.Close, nil

	case "redis":
		rdb, err := redissvc.Connect(ctx, redissvc.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewRedisItemStore(rdb, cfg.Redis.Key), rdb.Close, nil

	case "s3":
		client, err := NewS3Client(ctx, S3Options{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewS3ItemStore(client, cfg.S3.Bucket, cfg.S3.Key), noop, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
