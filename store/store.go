// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store provides a reference persistence adapter for
// UTXO records, keyed by transaction hash. The codec itself treats
// the key/value store as an external collaborator; this package gives
// that collaborator one concrete, swappable implementation.
package store

import (
	"github.com/btcsuite/goleveldb/leveldb"

	"gitlab.com/jaxnet/coins/chainhash"
)

// Store persists encoded Coins records under a key derived from the
// transaction hash. A record must be deleted, never written empty,
// when its last output is spent.
type Store interface {
	Get(hash chainhash.Hash) ([]byte, bool, error)
	Put(hash chainhash.Hash, record []byte) error
	Delete(hash chainhash.Hash) error
	Close() error
}

// LevelDBStore implements Store over a local goleveldb database.
type LevelDBStore struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a LevelDBStore at dir.
func Open(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// Get returns the record stored under hash. The second return value
// is false if no record exists for that hash.
func (s *LevelDBStore) Get(hash chainhash.Hash) ([]byte, bool, error) {
	val, err := s.db.Get(hash[:], nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Put writes record under hash, overwriting any previous value.
// Callers must never pass an empty-record encoding; the caller is
// expected to Delete instead.
func (s *LevelDBStore) Put(hash chainhash.Hash, record []byte) error {
	return s.db.Put(hash[:], record, nil)
}

// Delete removes the record stored under hash, if any.
func (s *LevelDBStore) Delete(hash chainhash.Hash) error {
	return s.db.Delete(hash[:], nil)
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
