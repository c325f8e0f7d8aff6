package backend

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var arraysBucket = []byte("arrays")

// BoltBackend persists schema blobs in a bbolt database, one bucket keyed
// by array URI.
type BoltBackend struct {
	db *bbolt.DB
}

var _ Backend = (*BoltBackend)(nil)

// OpenBolt opens (creating if necessary) the bolt database at path.
func OpenBolt(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create backend dir: %w", err)
	}
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("open backend db %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(arraysBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init arrays bucket: %w", err)
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Materialize(uri string, blob []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		buck := tx.Bucket(arraysBucket)
		if buck.Get([]byte(uri)) != nil {
			return fmt.Errorf("%w: %s", ErrExists, uri)
		}
		return buck.Put([]byte(uri), blob)
	})
}

func (b *BoltBackend) Fetch(uri string) ([]byte, error) {
	var blob []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(arraysBucket).Get([]byte(uri))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, uri)
		}
		// Copy out: bolt pages are only valid inside the transaction.
		blob = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (b *BoltBackend) List() ([]string, error) {
	var uris []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(arraysBucket).ForEach(func(k, _ []byte) error {
			uris = append(uris, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return uris, nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
