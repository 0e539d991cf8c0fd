package store

import (
	"encoding/json"
	"sync"
)

// MemoryStorage keeps the collection in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// deepCopy returns a deep copy of a document by round-tripping through JSON.
// Values that cannot be encoded fall back to a shallow copy.
func deepCopy(src Record) Record {
	if src == nil {
		return nil
	}
	b, err := json.Marshal(src)
	if err != nil {
		return clone(src)
	}
	var dst Record
	if err := json.Unmarshal(b, &dst); err != nil {
		return clone(src)
	}
	return dst
}

func (m *MemoryStorage) Read() ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	for i, r := range m.records {
		out[i] = clone(r)
	}
	return out, nil
}

func (m *MemoryStorage) Write(records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make([]Record, len(records))
	for i, r := range records {
		m.records[i] = clone(r)
	}
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// Snapshot returns a deep copy of the last written collection, in the shape
// it would have after being persisted to disk.
func (m *MemoryStorage) Snapshot() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	for i, r := range m.records {
		out[i] = deepCopy(r)
	}
	return out
}
