package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/migrations"
	"github.com/rryowa/bookstore/internal/storage"
	"github.com/rryowa/bookstore/internal/storage/file"
	"github.com/rryowa/bookstore/internal/storage/memory"
	"github.com/rryowa/bookstore/internal/storage/postgres"
	"github.com/rryowa/bookstore/internal/storage/redis"
	"github.com/rryowa/bookstore/internal/util"
)

const (
	backendMemory   = "memory"
	backendFile     = "file"
	backendRedis    = "redis"
	backendPostgres = "postgres"
)

// newStorage opens the credential store selected by cfg.Backend. The cleanup
// func is never nil.
func newStorage(ctx context.Context, cfg *util.StorageConfig, log *zap.SugaredLogger) (storage.Storage, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case backendMemory:
		return memory.NewStorage(), noop, nil
	case backendFile:
		log.Debugw("Using file storage", "path", cfg.FilePath)
		return file.NewStorage(cfg.FilePath), noop, nil
	case backendRedis:
		rc, cleanup, err := util.NewRedisClient(ctx, log, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewStorage(rc, cfg.Namespace), cleanup, nil
	case backendPostgres:
		db, cleanup, err := util.NewDBConnection(log, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(db, log); err != nil {
			cleanup()
			return nil, nil, err
		}
		return postgres.NewStorage(db, cfg.Namespace), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
