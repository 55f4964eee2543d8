package cache

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

var _ Backend = (*BadgerBackend)(nil)

const (
	valuePrefix = "v\x00"
	setPrefix   = "s\x00"
)

// BadgerBackend keeps the cache in an embedded Badger database. A set member
// is stored as its own key, "s\x00{set}\x00{member}", so membership changes
// never rewrite the whole set.
type BadgerBackend struct {
	db *badger.DB
}

// NewBadgerBackend opens (or creates) a database in dir. An empty dir opens
// an in-memory database.
func NewBadgerBackend(dir string) (*BadgerBackend, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func valueKey(key string) []byte {
	return []byte(valuePrefix + key)
}

func memberPrefix(key string) []byte {
	return []byte(setPrefix + key + "\x00")
}

func memberKey(key, member string) []byte {
	return append(memberPrefix(key), member...)
}

func (b *BadgerBackend) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(valueKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

func (b *BadgerBackend) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(valueKey(key), []byte(value))
	})
}

func (b *BadgerBackend) Del(_ context.Context, keys ...string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(valueKey(key)); err != nil {
				return err
			}
			members, err := scanMembers(txn, key)
			if err != nil {
				return err
			}
			for _, m := range members {
				if err := txn.Delete(memberKey(key, m)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (b *BadgerBackend) SAdd(_ context.Context, key string, members ...string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, m := range members {
			if err := txn.Set(memberKey(key, m), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BadgerBackend) SRem(_ context.Context, key string, members ...string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, m := range members {
			if err := txn.Delete(memberKey(key, m)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BadgerBackend) SMembers(_ context.Context, key string) ([]string, error) {
	var members []string
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		members, err = scanMembers(txn, key)
		return err
	})
	return members, err
}

func (b *BadgerBackend) Ping(context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger: database is closed")
	}
	return nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

func scanMembers(txn *badger.Txn, key string) ([]string, error) {
	prefix := memberPrefix(key)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var members []string
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		members = append(members, string(it.Item().Key()[len(prefix):]))
	}
	return members, nil
}
