// Package store provides an embedded document store over pluggable storage backends.
package store

import "errors"

// Record is a schema-less document. Callers assign their own "id" field;
// the store never generates or checks identifiers.
type Record = map[string]any

// ErrNoStorage is returned when a DB is opened without a backing storage.
var ErrNoStorage = errors.New("store: file path required when no storage is provided")

// Storage is the interface that all persistence backends must implement.
// The whole collection is read at open time and rewritten after every
// mutation.
type Storage interface {
	// Read returns the persisted collection in order. Missing or corrupt
	// data yields an empty collection rather than an error.
	Read() ([]Record, error)

	// Write replaces the persisted collection.
	Write(records []Record) error

	// Close releases any resources held by the backend.
	Close() error
}
