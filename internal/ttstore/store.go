package ttstore

import (
	"bytes"
	"encoding/gob"

	"github.com/dgraph-io/badger/v4"
)

const keySnapshot = "tt_snapshot"

// Record is one transposition table slot, shaped so the engine package
// can convert to/from its own entry type without ttstore importing
// engine (which would create an import cycle, since engine is the
// natural caller of ttstore).
type Record struct {
	Hash  uint64
	Move  uint32
	Score int
	Depth int
	Flag  uint8
}

// Store wraps a BadgerDB instance dedicated to transposition table
// snapshots.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the Badger database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot persists records as the table's warm-start snapshot,
// replacing whatever was saved before.
func (s *Store) SaveSnapshot(records []Record) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySnapshot), buf.Bytes())
	})
}

// LoadSnapshot returns the previously saved records, or an empty slice
// if none were ever saved.
func (s *Store) LoadSnapshot() ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySnapshot))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&records)
		})
	})
	return records, err
}
