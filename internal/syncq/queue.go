// Package syncq implements the durable FIFO of outbound mutations and the
// drain loop that delivers them to the remote service.
package syncq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"questflow/internal/domain/question"
	"questflow/internal/notify"
)

const maxAttempts = 3

// Item is one pending outbound mutation. The payload is a snapshot taken at
// enqueue time; later changes to the source record do not reach it.
type Item struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Attempts   int             `json:"attempts"`
}

// QueueStore persists the queue after every state change so a restart resumes
// exactly where the previous run stopped.
type QueueStore interface {
	Append(item *Item) error
	Remove(id string) error
	SetAttempts(id string, attempts int) error
	LoadAll() ([]*Item, error)
	Close() error
}

// Queue holds pending mutations in enqueue order and drains them
// opportunistically. At most one drain pass runs at a time.
type Queue struct {
	mu        sync.Mutex
	log       *slog.Logger
	store     QueueStore
	transport Transport
	notifier  notify.Notifier
	online    func() bool
	ready     func() error
	onSynced  func(time.Time)
	items     []*Item
	draining  bool
}

// NewQueue loads the persisted queue. The online probe reports connectivity,
// ready reports whether the remote endpoint is configured, and onSynced
// receives the timestamp of every drain pass that reached the end.
func NewQueue(store QueueStore, transport Transport, notifier notify.Notifier,
	online func() bool, ready func() error, onSynced func(time.Time), log *slog.Logger) (*Queue, error) {

	items, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load sync queue: %w", err)
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if onSynced == nil {
		onSynced = func(time.Time) {}
	}
	return &Queue{
		log:       log,
		store:     store,
		transport: transport,
		notifier:  notifier,
		online:    online,
		ready:     ready,
		onSynced:  onSynced,
		items:     items,
	}, nil
}

// Enqueue appends a pending item with a deep-copied payload and persists it.
// When connectivity is available a drain attempt is kicked off in the
// background.
func (q *Queue) Enqueue(action string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	item := &Item{
		ID:         uuid.NewString(),
		Action:     action,
		Payload:    data,
		EnqueuedAt: time.Now(),
	}

	q.mu.Lock()
	if err := q.store.Append(item); err != nil {
		q.mu.Unlock()
		return fmt.Errorf("%w: %v", question.ErrPersistence, err)
	}
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.log.Debug("sync item enqueued", "id", item.ID, "action", action)

	if q.online() {
		go q.Drain(context.Background())
	}
	return nil
}

// Drain processes every currently queued item once, strictly in enqueue
// order. It is a no-op while another drain runs, while offline, or when the
// queue is empty. Each item is attempted at most once per pass; an item that
// has failed maxAttempts times is abandoned with a single user-visible
// failure notice. The pass timestamp is recorded only when the pass reached
// the end of its snapshot.
func (q *Queue) Drain(ctx context.Context) error {
	if q.Len() == 0 || !q.online() {
		return nil
	}

	q.mu.Lock()
	if q.draining || len(q.items) == 0 {
		q.mu.Unlock()
		return nil
	}
	if err := q.ready(); err != nil {
		q.mu.Unlock()
		q.notifier.Notify(notify.SeverityError, "Sync Error", err.Error())
		return err
	}
	q.draining = true
	snapshot := append([]*Item(nil), q.items...)
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
	}()

	reachedEnd := true
	for _, item := range snapshot {
		if ctx.Err() != nil {
			reachedEnd = false
			break
		}

		// An abandoned item can survive a failed removal. It is never sent
		// or reported again; only the removal is retried.
		if item.Attempts >= maxAttempts {
			if rmErr := q.remove(item.ID); rmErr != nil {
				q.log.Error("abandoned item not removed", "id", item.ID, "error", rmErr)
			}
			continue
		}

		err := q.transport.Send(ctx, item.Action, item.Payload)
		if err == nil {
			if rmErr := q.remove(item.ID); rmErr != nil {
				q.log.Error("delivered item not removed", "id", item.ID, "error", rmErr)
			}
			q.log.Debug("sync item delivered", "id", item.ID, "action", item.Action)
			continue
		}

		item.Attempts++
		q.log.Warn("sync item failed", "id", item.ID, "attempt", item.Attempts, "error", err)

		if item.Attempts >= maxAttempts {
			q.notifier.Notify(notify.SeverityError, "Sync Failed",
				fmt.Sprintf("Failed to sync %s %s after %d attempts: %v", item.Action, item.ID, maxAttempts, err))
			if rmErr := q.remove(item.ID); rmErr != nil {
				q.log.Error("abandoned item not removed", "id", item.ID, "error", rmErr)
				if upErr := q.store.SetAttempts(item.ID, item.Attempts); upErr != nil {
					q.log.Error("attempt count not persisted", "id", item.ID, "error", upErr)
				}
			}
			continue
		}
		if upErr := q.store.SetAttempts(item.ID, item.Attempts); upErr != nil {
			q.log.Error("attempt count not persisted", "id", item.ID, "error", upErr)
		}
	}

	if reachedEnd {
		q.onSynced(time.Now())
	}
	return nil
}

// ForceSync enqueues every supplied payload as a fresh create and drains.
// It fails fast, without touching the queue, when the remote endpoint is not
// configured or connectivity is absent.
func (q *Queue) ForceSync(ctx context.Context, payloads []any) error {
	if err := q.ready(); err != nil {
		return err
	}
	if !q.online() {
		return question.ErrOffline
	}
	for _, p := range payloads {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		item := &Item{ID: uuid.NewString(), Action: "create", Payload: data, EnqueuedAt: time.Now()}
		q.mu.Lock()
		if err := q.store.Append(item); err != nil {
			q.mu.Unlock()
			return fmt.Errorf("%w: %v", question.ErrPersistence, err)
		}
		q.items = append(q.items, item)
		q.mu.Unlock()
	}
	return q.Drain(ctx)
}

// HandleOnline reacts to regained connectivity by draining in the background.
func (q *Queue) HandleOnline() {
	q.notifier.Notify(notify.SeverityInfo, "Connection Restored", "Processing pending sync items...")
	go q.Drain(context.Background())
}

// HandleOffline only raises a notice; the queue itself is untouched.
func (q *Queue) HandleOffline() {
	q.notifier.Notify(notify.SeverityWarning, "Connection Lost",
		"Changes will be synced when connection is restored.")
}

// Len returns the number of pending items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// IsDraining reports whether a drain pass is currently running.
func (q *Queue) IsDraining() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.draining
}

func (q *Queue) remove(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.store.Remove(id); err != nil {
		return err
	}
	for i, it := range q.items {
		if it.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			break
		}
	}
	return nil
}
