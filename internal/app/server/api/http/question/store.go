package question

import (
	"sync"

	domain "questflow/internal/domain/question"
)

// memStore keeps the received questions in memory. The server is a
// development aid for draining clients against; it has no durability.
type memStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Question
	order []string
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]*domain.Question)}
}

func (m *memStore) upsert(q *domain.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[q.ID]; !exists {
		m.order = append(m.order, q.ID)
	}
	m.items[q.ID] = q.Clone()
}

func (m *memStore) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[id]; !exists {
		return false
	}
	delete(m.items, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m *memStore) list() []*domain.Question {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Question, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id].Clone())
	}
	return out
}
