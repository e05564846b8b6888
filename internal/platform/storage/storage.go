// Package storage holds the durable client-side state that survives process
// restarts: the session token and the two identity records.
package storage

import (
	"context"
	"errors"
	"fmt"

	"ems/internal/platform/config"
	"ems/internal/platform/crypto"
)

var ErrClosed = errors.New("storage closed")

// Storage is a small string key/value store. SetAll and Delete apply to
// every key in the call or to none of them.
type Storage interface {
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	SetAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open builds the backend selected by cfg.Backend, sealed when an
// encryption key is configured.
func Open(ctx context.Context, cfg config.SessionConfig) (Storage, error) {
	var sealer *crypto.Sealer
	if cfg.EncryptionKey != "" {
		var err error
		if sealer, err = crypto.New(cfg.EncryptionKey); err != nil {
			return nil, fmt.Errorf("session encryption: %w", err)
		}
	}

	st, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sealer != nil {
		return NewSealed(st, sealer), nil
	}
	return st, nil
}

func openBackend(ctx context.Context, cfg config.SessionConfig) (Storage, error) {
	switch cfg.Backend {
	case config.SessionBackendFile:
		return NewFile(cfg.File), nil
	case config.SessionBackendRedis:
		return NewRedis(ctx, cfg.Redis)
	case config.SessionBackendPostgres:
		return NewPostgres(ctx, cfg.Postgres)
	case config.SessionBackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
