// Package storage provides the key-value substrate clipboard history is
// persisted to.
package storage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// KeyValueStore is a byte store keyed by string identifiers.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// StorageConfig holds configuration for opening a KeyValueStore
type StorageConfig struct {
	Backend string
	Path    string
	Logger  *zap.Logger
}

// Open returns the store selected by config.Backend
func Open(config StorageConfig) (KeyValueStore, error) {
	switch config.Backend {
	case "", BackendBolt:
		s, err := NewBoltStorage(config)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteStorage(config)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Backend)
	}
}
