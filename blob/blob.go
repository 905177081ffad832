// Package blob is the whole-value key-value store the journal persists
// into. A backend stores opaque bytes under a key; it never looks inside.
package blob

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rustyeddy/tradejournal/config"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("blob not found")

// Store keeps one blob per key. Set replaces the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFile(cfg.Path)
	case config.BackendSQLite:
		return NewSQLite(ctx, cfg.DBPath)
	case config.BackendRedis:
		return DialRedis(ctx, cfg.Redis)
	case config.BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func validKey(key string) error {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
