package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JSONStorage stores the collection as a single JSON array on disk:
//
//	[
//	  {
//	    "complete": false,
//	    "id": 123,
//	    "title": "Delete Me"
//	  }
//	]
type JSONStorage struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func NewJSONStorage(path string) (*JSONStorage, error) {
	if path == "" {
		return nil, ErrNoStorage
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &JSONStorage{path: path, logger: slog.Default()}, nil
}

// Path returns the backing file path.
func (s *JSONStorage) Path() string {
	return s.path
}

func (s *JSONStorage) Read() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Ignoring unparsable store file", "path", s.path, "error", err)
		return []Record{}, nil
	}
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *JSONStorage) Write(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if records == nil {
		records = []Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *JSONStorage) Close() error {
	return nil
}
