package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/config"
	"github.com/hongminglow/ubu-lite/internal/storage"
	"github.com/hongminglow/ubu-lite/internal/storage/file"
	"github.com/hongminglow/ubu-lite/internal/storage/memory"
	"github.com/hongminglow/ubu-lite/internal/storage/mysql"
	"github.com/hongminglow/ubu-lite/internal/storage/postgres"
	"github.com/hongminglow/ubu-lite/internal/storage/redis"
	"github.com/hongminglow/ubu-lite/internal/storage/sealed"
)

// OpenBackend builds the KV backend named by cfg, sealed when a secret is configured.
// The caller owns the returned backend and must Close it.
func OpenBackend(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (storage.KV, error) {
	var (
		kv  storage.KV
		err error
	)
	switch cfg.SessionBackend {
	case config.BackendMemory:
		kv = memory.New()
	case config.BackendFile:
		kv, err = file.New(cfg.SessionFile)
	case config.BackendRedis:
		kv, err = redis.New(ctx, redis.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	case config.BackendPostgres:
		kv, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	case config.BackendMySQL:
		kv, err = mysql.Open(ctx, cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s session backend: %w", cfg.SessionBackend, err)
	}

	if len(cfg.SessionSecret) > 0 {
		s, err := sealed.New(kv, cfg.SessionSecret)
		if err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("seal session backend: %w", err)
		}
		kv = s
	}

	log.WithFields(logrus.Fields{
		"backend": cfg.SessionBackend,
		"sealed":  len(cfg.SessionSecret) > 0,
	}).Debug("session backend ready")
	return kv, nil
}

// Open builds the backend and the Store over it.
func Open(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*Store, storage.KV, error) {
	kv, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(kv, WithNamespace(cfg.SessionNamespace)), kv, nil
}
