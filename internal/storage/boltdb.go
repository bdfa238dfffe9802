package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const kvBucket = "pastepal"

var errMissingBucket = errors.New("bucket " + kvBucket + " missing")

var _ KeyValueStore = (*BoltStorage)(nil)

// BoltStorage implements KeyValueStore on a single BoltDB bucket
type BoltStorage struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// NewBoltStorage opens (or creates) the database at config.Path
func NewBoltStorage(config StorageConfig) (*BoltStorage, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Another process holding the file lock makes Open fail after the timeout
	// instead of blocking forever.
	db, err := bbolt.Open(config.Path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(kvBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	logger.Debug("BoltStorage initialized", zap.String("db_path", config.Path))

	return &BoltStorage{db: db, logger: logger}, nil
}

// Get returns a copy of the value stored under key
func (s *BoltStorage) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(kvBucket))
		if b == nil {
			return errMissingBucket
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid for the lifetime of the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *BoltStorage) Set(key string, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(kvBucket))
		if b == nil {
			return errMissingBucket
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	s.logger.Debug("Stored value", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Close closes the database connection
func (s *BoltStorage) Close() error {
	return s.db.Close()
}
