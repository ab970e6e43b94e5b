// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists escrow records. Every component owns a set of
// Tables, each bound to its own prefixed key space.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
)

var errCorruptRecord = errors.New("corrupt record")

// Table is a typed, read-through cached view over one key space. Records
// returned by Get are shallow copies; mutating them has no effect until Put.
// Slice fields share backing arrays with the cache and must be cloned by the
// owner before they leave the package or are modified.
//
// Table is not safe for concurrent use. After an aborted write the cache
// must be flushed.
type Table[T any] struct {
	db    database.Database
	cache *lru.Cache[string, *T]
}

// NewTable binds a table to the prefix namespace of parent.
func NewTable[T any](parent database.Database, prefix []byte, cacheSize int) *Table[T] {
	return &Table[T]{
		db:    prefixdb.New(prefix, parent),
		cache: lru.NewCache[string, *T](cacheSize),
	}
}

// Get returns the record stored under key. The bool is false when the key
// is absent.
func (t *Table[T]) Get(key []byte) (*T, bool, error) {
	if cached, ok := t.cache.Get(string(key)); ok {
		if cached == nil {
			return nil, false, nil
		}
		v := *cached
		return &v, true, nil
	}

	bytes, err := t.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		t.cache.Put(string(key), nil)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	v, err := parse[T](bytes)
	if err != nil {
		return nil, false, err
	}
	cached := *v
	t.cache.Put(string(key), &cached)
	return v, true, nil
}

// Has reports whether key is present.
func (t *Table[T]) Has(key []byte) (bool, error) {
	_, ok, err := t.Get(key)
	return ok, err
}

func (t *Table[T]) Put(key []byte, v *T) error {
	bytes, err := Codec.Marshal(CodecVersion, v)
	if err != nil {
		return err
	}
	if err := t.db.Put(key, bytes); err != nil {
		return err
	}
	cached := *v
	t.cache.Put(string(key), &cached)
	return nil
}

func (t *Table[T]) Delete(key []byte) error {
	if err := t.db.Delete(key); err != nil {
		return err
	}
	t.cache.Put(string(key), nil)
	return nil
}

// Flush drops every cached record.
func (t *Table[T]) Flush() {
	t.cache.Flush()
}

// Iterate visits records in key order, starting at start (inclusive) and
// restricted to keys beginning with prefix. Iteration stops when fn returns
// false or an error.
func (t *Table[T]) Iterate(start, prefix []byte, fn func(key []byte, v *T) (bool, error)) error {
	it := t.db.NewIteratorWithStartAndPrefix(start, prefix)
	defer it.Release()

	for it.Next() {
		v, err := parse[T](it.Value())
		if err != nil {
			return err
		}
		key := append([]byte(nil), it.Key()...)
		more, err := fn(key, v)
		if err != nil || !more {
			return err
		}
	}
	return it.Error()
}

func parse[T any](bytes []byte) (*T, error) {
	v := new(T)
	if _, err := Codec.Unmarshal(bytes, v); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptRecord, err)
	}
	return v, nil
}
