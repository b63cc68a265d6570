package question

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Backend is the durability contract the store writes through. Implementations
// receive the full ordered collection alongside the changed question, because
// the serialized fallback rewrites everything on each call while the
// hierarchical backend only touches the changed files.
type Backend interface {
	SaveQuestion(q *Question, all []*Question) error
	DeleteQuestion(q *Question, all []*Question) error
	LoadAll() ([]*Question, error)
	ReadMedia(path string) ([]byte, error)
	SupportsBinary() bool
	Clear() error
}

// EnqueueFunc receives the action name and a snapshot of the mutated question
// after a successful persist. Wired only when synchronization is enabled.
type EnqueueFunc func(action string, q *Question)

// Store is the authoritative in-memory question collection. All reads are
// served from memory; mutations persist through the active backend before
// they are visible, and roll back if the backend write fails.
type Store struct {
	mu      sync.Mutex
	log     *slog.Logger
	backend Backend
	items   []*Question
	index   map[string]*Question
	enqueue EnqueueFunc
	now     func() time.Time
}

func NewStore(backend Backend, log *slog.Logger) *Store {
	return &Store{
		log:     log,
		backend: backend,
		index:   make(map[string]*Question),
		now:     time.Now,
	}
}

// SetEnqueueHook wires the sync-queue hook. A nil hook disables enqueueing.
func (s *Store) SetEnqueueHook(fn EnqueueFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueue = fn
}

// Load replaces the collection with the backend's contents.
func (s *Store) Load() error {
	loaded, err := s.backend.LoadAll()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(loaded)
	return nil
}

// SwitchBackend adopts a new backend and reloads the collection wholesale
// from it. Prior in-memory state is discarded, not merged.
func (s *Store) SwitchBackend(backend Backend) error {
	loaded, err := backend.LoadAll()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = backend
	s.replaceLocked(loaded)
	s.log.Info("storage backend switched", "questions", len(loaded))
	return nil
}

func (s *Store) replaceLocked(items []*Question) {
	s.items = items
	s.index = make(map[string]*Question, len(items))
	for _, q := range items {
		s.index[q.ID] = q
	}
}

// List returns the collection in creation order. Every element is a deep
// copy; callers cannot reach internal state through it.
func (s *Store) List() []*Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Question, len(s.items))
	for i, q := range s.items {
		out[i] = q.Clone()
	}
	return out
}

// Get returns a copy of the question with the given id.
func (s *Store) Get(id string) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return q.Clone(), nil
}

// Count returns the number of questions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Create assigns an id and timestamps to the draft, appends it and persists.
// The draft itself is never retained; the returned question is a copy of the
// stored state.
func (s *Store) Create(draft *Question) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := draft.Clone()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if _, exists := s.index[q.ID]; exists {
		return nil, fmt.Errorf("duplicate question id: %s", q.ID)
	}
	now := s.now()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	s.items = append(s.items, q)
	s.index[q.ID] = q

	if err := s.backend.SaveQuestion(q, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		delete(s.index, q.ID)
		s.log.Error("create rolled back", "id", q.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.fireEnqueue("create", q)
	s.log.Debug("question created", "id", q.ID, "kind", q.Kind)
	return q.Clone(), nil
}

// Patch carries the fields Update overwrites. Nil fields are left untouched;
// set fields replace the existing value outright (no deep merge).
type Patch struct {
	Kind    *Kind
	Body    *string
	Choices *[]string
	Answer  *int
	Media   *[]Media
}

// Update merges the patch into the stored question, bumps updatedAt and
// persists. On persistence failure the previous state is restored.
func (s *Store) Update(id string, patch Patch) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev := q.Clone()

	if patch.Kind != nil {
		q.Kind = *patch.Kind
	}
	if patch.Body != nil {
		q.Body = *patch.Body
	}
	if patch.Choices != nil {
		q.Choices = append([]string(nil), (*patch.Choices)...)
	}
	if patch.Answer != nil {
		a := *patch.Answer
		q.Answer = &a
	}
	if patch.Media != nil {
		q.Media = make([]Media, len(*patch.Media))
		for i, m := range *patch.Media {
			q.Media[i] = m.clone()
		}
	}
	q.UpdatedAt = s.now()

	if err := s.backend.SaveQuestion(q, s.items); err != nil {
		*q = *prev
		s.log.Error("update rolled back", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.fireEnqueue("update", q)
	s.log.Debug("question updated", "id", id)
	return q.Clone(), nil
}

// Delete removes the question and its media bytes. Returns false without
// error when the id is absent, so a second delete of the same id is harmless.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.index[id]
	if !ok {
		return false, nil
	}
	pos := s.positionLocked(id)
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)

	if err := s.backend.DeleteQuestion(q, s.items); err != nil {
		s.items = append(s.items, nil)
		copy(s.items[pos+1:], s.items[pos:])
		s.items[pos] = q
		s.index[id] = q
		s.log.Error("delete rolled back", "id", id, "error", err)
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.fireEnqueue("delete", q)
	s.log.Debug("question deleted", "id", id)
	return true, nil
}

// Clear wipes the collection and the backend.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevItems, prevIndex := s.items, s.index
	s.items = nil
	s.index = make(map[string]*Question)

	if err := s.backend.Clear(); err != nil {
		s.items, s.index = prevItems, prevIndex
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.log.Info("all questions cleared")
	return nil
}

// ReadMedia reads stored attachment bytes through the active backend.
func (s *Store) ReadMedia(path string) ([]byte, error) {
	s.mu.Lock()
	backend := s.backend
	s.mu.Unlock()
	return backend.ReadMedia(path)
}

func (s *Store) positionLocked(id string) int {
	for i, q := range s.items {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fireEnqueue(action string, q *Question) {
	if s.enqueue == nil {
		return
	}
	s.enqueue(action, q.Clone())
}
