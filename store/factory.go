package store

import "fmt"

// New creates a Storage based on the backend name.
//
// Supported backends:
//
//	"json"   - JSON array in the file at path (default)
//	"sqlite" - SQLite database at path
//	"memory" - In-memory (ephemeral, for testing); path is ignored
func New(backend, path string) (Storage, error) {
	switch backend {
	case "json", "":
		return NewJSONStorage(path)
	case "sqlite":
		return NewSqliteStorage(path)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, sqlite, memory)", backend)
	}
}
