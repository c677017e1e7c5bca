package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"frustration-list/internal/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var (
	publishedPrefix = []byte("published:")
	pendingPrefix   = []byte("pending:")
)

// BadgerStore keeps the catalog in an in-memory Badger instance. Ordering
// comes from the key: each insert takes the next sequence number, stored
// inverted so a forward prefix scan yields newest first.
//
//	published:<seq> -> id
//	pending:<seq>   -> id
//	item:<id>       -> item JSON
//	loc:<id>        -> the published:/pending: key currently holding id
type BadgerStore struct {
	db  *badger.DB
	seq atomic.Uint64
}

// NewBadgerStore opens an in-memory Badger database. Nothing is written to
// disk, so a restart starts from an empty catalog.
func NewBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Silence default logger
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) nextKey(prefix []byte) []byte {
	n := s.seq.Add(1)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], math.MaxUint64-n)
	return key
}

func itemKey(id string) []byte { return []byte("item:" + id) }
func locKey(id string) []byte  { return []byte("loc:" + id) }

// insert writes item under a fresh key in the given collection.
func (s *BadgerStore) insert(txn *badger.Txn, prefix []byte, item *model.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	id := item.ID.String()
	key := s.nextKey(prefix)
	if err := txn.Set(itemKey(id), data); err != nil {
		return err
	}
	if err := txn.Set(key, []byte(id)); err != nil {
		return err
	}
	return txn.Set(locKey(id), key)
}

func (s *BadgerStore) Reset(_ context.Context, seed []model.Item) error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop badger data: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		// Oldest first so seed[0] ends up at the head.
		for i := len(seed) - 1; i >= 0; i-- {
			if err := s.insert(txn, publishedPrefix, &seed[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) AddPending(_ context.Context, item *model.Item) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return s.insert(txn, pendingPrefix, item)
	})
}

func (s *BadgerStore) Publish(_ context.Context, id uuid.UUID) (*model.Item, error) {
	var item *model.Item
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		item, err = s.takePending(txn, id.String())
		if err != nil {
			return err
		}
		return s.insert(txn, publishedPrefix, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *BadgerStore) Discard(_ context.Context, id uuid.UUID) (*model.Item, error) {
	var item *model.Item
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		item, err = s.takePending(txn, id.String())
		if err != nil {
			return err
		}
		return txn.Delete(itemKey(id.String()))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// takePending unlinks id from the pending collection and returns the item.
func (s *BadgerStore) takePending(txn *badger.Txn, id string) (*model.Item, error) {
	loc, err := txn.Get(locKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	key, err := loc.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(key, pendingPrefix) {
		return nil, ErrNotFound
	}

	item, err := getItem(txn, id)
	if err != nil {
		return nil, err
	}
	if err := txn.Delete(key); err != nil {
		return nil, err
	}
	if err := txn.Delete(locKey(id)); err != nil {
		return nil, err
	}
	return item, nil
}

func getItem(txn *badger.Txn, id string) (*model.Item, error) {
	entry, err := txn.Get(itemKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	var item model.Item
	err = entry.Value(func(val []byte) error {
		return json.Unmarshal(val, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *BadgerStore) Published(_ context.Context) ([]model.Item, error) {
	return s.list(publishedPrefix)
}

func (s *BadgerStore) Pending(_ context.Context) ([]model.Item, error) {
	return s.list(pendingPrefix)
}

func (s *BadgerStore) list(prefix []byte) ([]model.Item, error) {
	var items []model.Item
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			item, err := getItem(txn, string(id))
			if errors.Is(err, ErrNotFound) {
				continue
			} else if err != nil {
				return err
			}
			items = append(items, *item)
		}
		return nil
	})
	return items, err
}
