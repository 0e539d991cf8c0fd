package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SqliteStorage stores the collection in a single SQLite table.
//
// Tables:
//
//	records(pos, data)  PRIMARY KEY (pos)
//
// pos preserves insertion order; data holds the JSON-encoded record.
type SqliteStorage struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSqliteStorage(dbPath string) (*SqliteStorage, error) {
	if dbPath == "" {
		return nil, ErrNoStorage
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		pos INTEGER PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) Close() error {
	return s.db.Close()
}

func (s *SqliteStorage) Read() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query("SELECT data FROM records ORDER BY pos")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []Record{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec == nil {
			continue
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *SqliteStorage) Write(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO records (pos, data) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(i, string(b)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
