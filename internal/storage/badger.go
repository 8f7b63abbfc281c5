// ABOUTME: Local badger engine for the key-value Backend.
// ABOUTME: Stores the record document in an embedded badger database.
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

type badgerEngine struct {
	db *badger.DB
}

// OpenBadger opens a key-value Backend backed by a badger directory.
func OpenBadger(dir string) (*KVStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}
	return openBadger(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenBadgerInMemory opens a badger-backed Backend with no files on disk.
func OpenBadgerInMemory() (*KVStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func openBadger(opts badger.Options) (*KVStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return newKVStore(&badgerEngine{db: db}, KindKV), nil
}

func (e *badgerEngine) get(key string) ([]byte, error) {
	var out []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errBlobNotFound
	}
	return out, err
}

func (e *badgerEngine) set(key string, value []byte) error {
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (e *badgerEngine) close() error {
	return e.db.Close()
}
