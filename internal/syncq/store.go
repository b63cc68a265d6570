package syncq

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the queue in a local SQLite database. Rowid order is
// enqueue order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init queue tables: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sync_queue (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			payload BLOB NOT NULL,
			enqueued_at DATETIME NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

func (s *SQLiteStore) Append(item *Item) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_queue (id, action, payload, enqueued_at, attempts)
		VALUES (?, ?, ?, ?, ?)
	`, item.ID, item.Action, []byte(item.Payload), item.EnqueuedAt.Format(time.RFC3339Nano), item.Attempts)
	if err != nil {
		return fmt.Errorf("insert queue item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(id string) error {
	if _, err := s.db.Exec("DELETE FROM sync_queue WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete queue item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SetAttempts(id string, attempts int) error {
	if _, err := s.db.Exec("UPDATE sync_queue SET attempts = ? WHERE id = ?", attempts, id); err != nil {
		return fmt.Errorf("update queue item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadAll() ([]*Item, error) {
	rows, err := s.db.Query(`
		SELECT id, action, payload, enqueued_at, attempts
		FROM sync_queue
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query queue items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var item Item
		var payload []byte
		var enqueuedAt string
		if err := rows.Scan(&item.ID, &item.Action, &payload, &enqueuedAt, &item.Attempts); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		item.Payload = payload
		item.EnqueuedAt, _ = time.Parse(time.RFC3339Nano, enqueuedAt)
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is a QueueStore without durability, used in tests and as a
// fallback when the queue database cannot be opened.
type MemoryStore struct {
	mu    sync.Mutex
	items []*Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *MemoryStore) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) SetAttempts(id string, attempts int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			it.Attempts = attempts
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) LoadAll() ([]*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Item, len(m.items))
	for i, it := range m.items {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
