// ABOUTME: Charm kv engine for the key-value Backend.
// ABOUTME: Keeps the record document in Charm Cloud with sync after writes.
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// CharmDBName is the charm kv database holding the record document.
const CharmDBName = "superlift"

type charmEngine struct {
	kv       *kv.KV
	autoSync bool
}

// OpenCharm opens a key-value Backend on Charm kv. A non-empty host is
// exported as CHARM_HOST before the store is opened.
func OpenCharm(host string) (*KVStore, error) {
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, fmt.Errorf("set charm host: %w", err)
		}
	}

	db, err := kv.OpenWithDefaultsFallback(CharmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return newKVStore(&charmEngine{kv: db, autoSync: true}, KindCharm), nil
}

func (e *charmEngine) get(key string) ([]byte, error) {
	val, err := e.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errBlobNotFound
	}
	return val, err
}

func (e *charmEngine) set(key string, value []byte) error {
	if e.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process (MCP server?)")
	}
	if err := e.kv.Set([]byte(key), value); err != nil {
		return err
	}
	if e.autoSync {
		_ = e.kv.Sync()
	}
	return nil
}

func (e *charmEngine) close() error {
	return e.kv.Close()
}
