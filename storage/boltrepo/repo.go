package boltrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jrsteele09/go-auth-session/storage"
	bolt "go.etcd.io/bbolt"
)

// FileName is the database file created inside the data folder.
const FileName = "session.db"

var sessionBucket = []byte("session")

var _ storage.Repo = (*Repo)(nil)

// Repo persists session values in a bbolt database file so they survive
// process restarts.
type Repo struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Repo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data folder: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt.Open %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &Repo{db: db}, nil
}

// OpenInFolder opens the FileName database inside folder.
func OpenInFolder(folder string) (*Repo, error) {
	return Open(filepath.Join(folder, FileName))
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// bolt values are only valid for the life of the transaction
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, found, nil
}

func (r *Repo) Set(_ context.Context, key, value string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (r *Repo) Clear(_ context.Context) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(sessionBucket) != nil {
			if err := tx.DeleteBucket(sessionBucket); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(sessionBucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("clearing session bucket: %w", err)
	}
	return nil
}
