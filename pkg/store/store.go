// Package store keeps the command history of interactive sessions in a bbolt
// database file.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.crush.sh/pkg/logutil"
	"src.crush.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const bucketCmd = "cmd"

// Time to wait for the lock of a database file held by another process.
const openTimeout = time.Second

// DBStore is the permanent storage backend for crush. It is safe to use from
// multiple goroutines.
type DBStore struct {
	db *bolt.DB
}

var _ storedefs.Store = (*DBStore)(nil)

// Open opens the database file at path, creating it if needed.
func Open(path string) (*DBStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize command history: %w", err)
	}
	logger.Println("opened", path)
	return &DBStore{db}, nil
}

// Close closes the database file.
func (s *DBStore) Close() error {
	return s.db.Close()
}
