package store

import (
	"fmt"
	"maps"
	"sync"

	"github.com/stevemurr/todo-server/query"
)

// DB is an ordered collection of records with write-through persistence.
// Insertion order is preserved and is the only ordering. Every mutating
// call rewrites the whole collection to the backing Storage.
type DB struct {
	mu      sync.Mutex
	storage Storage
	records []Record
}

// Open loads the collection from storage and returns a DB over it.
func Open(storage Storage) (*DB, error) {
	if storage == nil {
		return nil, ErrNoStorage
	}
	records, err := storage.Read()
	if err != nil {
		return nil, fmt.Errorf("store: load collection: %w", err)
	}
	return &DB{storage: storage, records: records}, nil
}

// OpenFile opens a DB backed by the JSON file at path.
func OpenFile(path string) (*DB, error) {
	s, err := NewJSONStorage(path)
	if err != nil {
		return nil, err
	}
	return Open(s)
}

// OpenMemory opens a DB that is never written to disk.
func OpenMemory() *DB {
	return &DB{storage: NewMemoryStorage()}
}

func clone(r Record) Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// persist must be called with mu held.
func (d *DB) persist() error {
	if err := d.storage.Write(d.records); err != nil {
		return fmt.Errorf("store: persist collection: %w", err)
	}
	return nil
}

// Insert appends a copy of rec to the collection.
func (d *DB) Insert(rec Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, clone(rec))
	return d.persist()
}

// All returns a copy of every record in insertion order.
func (d *DB) All() []Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = clone(r)
	}
	return out
}

// Len returns the number of records in the collection.
func (d *DB) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

// Update merges fields into every record matching p. Existing keys are
// overwritten and new keys added. No match is not an error.
func (d *DB) Update(fields Record, p query.Predicate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.records {
		if query.Match(p, r) {
			maps.Copy(r, fields)
		}
	}
	return d.persist()
}

// Remove drops every record matching p. Survivors keep their relative order.
func (d *DB) Remove(p query.Predicate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.records[:0]
	for _, r := range d.records {
		if !query.Match(p, r) {
			kept = append(kept, r)
		}
	}
	clear(d.records[len(kept):])
	d.records = kept
	return d.persist()
}

// Search returns shallow copies of the records matching p, in collection order.
func (d *DB) Search(p query.Predicate) []Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []Record{}
	for _, r := range d.records {
		if query.Match(p, r) {
			out = append(out, clone(r))
		}
	}
	return out
}

// Close writes the collection one last time and closes the storage.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.persist(); err != nil {
		return err
	}
	return d.storage.Close()
}
