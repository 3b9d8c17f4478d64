// Package store provides the durable ledger.State backed by badger.
package store

import (
	"github.com/dgraph-io/badger/v2"
	"golang.org/x/xerrors"

	"givegate/ledger"
)

// Badger is a ledger.State over a badger key-value store. Commits of a
// whole operation land in a single badger transaction via Apply.
type Badger struct {
	db *badger.DB
}

var _ ledger.BatchState = (*Badger)(nil)

// Open opens (or creates) the store under dir.
func Open(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, xerrors.Errorf("opening badger store at %s: %w", dir, err)
	}
	return &Badger{db: db}, nil
}

// Close releases the underlying store.
func (s *Badger) Close() error {
	return s.db.Close()
}

func (s *Badger) Set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return xerrors.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (s *Badger) Get(key string) (*string, error) {
	var out *string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v := string(val)
			out = &v
			return nil
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("badger get %s: %w", key, err)
	}
	return out, nil
}

func (s *Badger) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return xerrors.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

// Apply writes a staged operation in one transaction, so a committed
// ledger operation is atomic on disk as well.
func (s *Badger) Apply(writes map[string]*string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for k, v := range writes {
			if v == nil {
				if err := txn.Delete([]byte(k)); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set([]byte(k), []byte(*v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return xerrors.Errorf("badger apply: %w", err)
	}
	return nil
}
