package syncq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"questflow/internal/domain/question"
	"questflow/internal/notify"
)

// fakeTransport records every send and fails the actions listed in failing.
type fakeTransport struct {
	mu       sync.Mutex
	sent     []sentCall
	failing  map[string]error
	attempts int
	block    chan struct{}
}

type sentCall struct {
	action  string
	payload string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failing: make(map[string]error)}
}

func (t *fakeTransport) Send(ctx context.Context, action string, payload json.RawMessage) error {
	if t.block != nil {
		<-t.block
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts++
	if err, ok := t.failing[action]; ok {
		return err
	}
	t.sent = append(t.sent, sentCall{action: action, payload: string(payload)})
	return nil
}

func (t *fakeTransport) attemptCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts
}

func (t *fakeTransport) Ping(ctx context.Context) error { return nil }

func (t *fakeTransport) calls() []sentCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]sentCall(nil), t.sent...)
}

// recordingNotifier collects notices for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *recordingNotifier) Notify(_ notify.Severity, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, title)
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notices...)
}

type queueFixture struct {
	queue     *Queue
	store     *MemoryStore
	transport *fakeTransport
	notifier  *recordingNotifier
	online    bool
	readyErr  error
	synced    []time.Time
}

func newQueueFixture(t *testing.T) *queueFixture {
	t.Helper()
	f := &queueFixture{
		store:     NewMemoryStore(),
		transport: newFakeTransport(),
		notifier:  &recordingNotifier{},
		online:    true,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	q, err := NewQueue(f.store, f.transport, f.notifier,
		func() bool { return f.online },
		func() error { return f.readyErr },
		func(ts time.Time) { f.synced = append(f.synced, ts) },
		log)
	require.NoError(t, err)
	f.queue = q
	return f
}

// enqueue adds an item without triggering the background drain.
func (f *queueFixture) enqueue(t *testing.T, action string, payload any) {
	t.Helper()
	prev := f.online
	f.online = false
	require.NoError(t, f.queue.Enqueue(action, payload))
	f.online = prev
}

func TestQueue_DrainDeliversInOrder(t *testing.T) {
	f := newQueueFixture(t)

	f.enqueue(t, "create", map[string]string{"id": "1"})
	f.enqueue(t, "update", map[string]string{"id": "1"})
	f.enqueue(t, "delete", map[string]string{"id": "1"})
	require.Equal(t, 3, f.queue.Len())

	require.NoError(t, f.queue.Drain(context.Background()))

	calls := f.transport.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "create", calls[0].action)
	assert.Equal(t, "update", calls[1].action)
	assert.Equal(t, "delete", calls[2].action)
	assert.Equal(t, 0, f.queue.Len())

	persisted, err := f.store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.Len(t, f.synced, 1)
}

func TestQueue_PayloadIsSnapshot(t *testing.T) {
	f := newQueueFixture(t)

	payload := map[string]string{"question": "before"}
	f.enqueue(t, "create", payload)
	payload["question"] = "after"

	require.NoError(t, f.queue.Drain(context.Background()))

	calls := f.transport.calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].payload, "before")
	assert.NotContains(t, calls[0].payload, "after")
}

func TestQueue_AbandonsAfterThreeAttempts(t *testing.T) {
	f := newQueueFixture(t)
	f.transport.failing["create"] = errors.New("server refuses")

	f.enqueue(t, "create", map[string]string{"id": "doomed"})

	// two failing passes keep the item with a bumped attempt count
	for pass := 1; pass <= 2; pass++ {
		require.NoError(t, f.queue.Drain(context.Background()))
		require.Equal(t, 1, f.queue.Len(), "pass %d", pass)
	}
	persisted, err := f.store.LoadAll()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 2, persisted[0].Attempts)
	assert.Empty(t, f.notifier.titles())

	// third failure abandons the item with one notice
	require.NoError(t, f.queue.Drain(context.Background()))
	assert.Equal(t, 0, f.queue.Len())
	persisted, err = f.store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.Equal(t, []string{"Sync Failed"}, f.notifier.titles())

	// a later pass does not re-notify
	f.enqueue(t, "update", map[string]string{"id": "fine"})
	require.NoError(t, f.queue.Drain(context.Background()))
	assert.Equal(t, []string{"Sync Failed"}, f.notifier.titles())
}

// flakyStore wraps a QueueStore and fails Remove on demand.
type flakyStore struct {
	QueueStore
	failRemove bool
}

func (s *flakyStore) Remove(id string) error {
	if s.failRemove {
		return errors.New("queue database locked")
	}
	return s.QueueStore.Remove(id)
}

func TestQueue_AbandonmentNotifiesOnceWhenRemovalFails(t *testing.T) {
	f := newQueueFixture(t)
	flaky := &flakyStore{QueueStore: f.store, failRemove: true}
	f.queue.store = flaky
	f.transport.failing["create"] = errors.New("server refuses")

	f.enqueue(t, "create", map[string]string{"id": "stuck"})

	for pass := 0; pass < 3; pass++ {
		require.NoError(t, f.queue.Drain(context.Background()))
	}
	assert.Equal(t, []string{"Sync Failed"}, f.notifier.titles())
	assert.Equal(t, 3, f.transport.attemptCount())
	require.Equal(t, 1, f.queue.Len(), "item survives while removal keeps failing")

	// further passes retry only the removal: no new sends, no new notices
	require.NoError(t, f.queue.Drain(context.Background()))
	assert.Equal(t, []string{"Sync Failed"}, f.notifier.titles())
	assert.Equal(t, 3, f.transport.attemptCount())
	assert.Equal(t, 1, f.queue.Len())

	// once the store recovers, the leftover is finally removed
	flaky.failRemove = false
	require.NoError(t, f.queue.Drain(context.Background()))
	assert.Equal(t, []string{"Sync Failed"}, f.notifier.titles())
	assert.Equal(t, 0, f.queue.Len())
}

func TestQueue_EveryItemAttemptedThreeTimesThenAbandoned(t *testing.T) {
	f := newQueueFixture(t)
	f.transport.failing["create"] = errors.New("always down")

	for i := 0; i < 3; i++ {
		f.enqueue(t, "create", map[string]int{"n": i})
	}

	for pass := 0; pass < 3; pass++ {
		require.NoError(t, f.queue.Drain(context.Background()))
	}

	assert.Equal(t, 0, f.queue.Len())
	assert.Empty(t, f.transport.calls())
	assert.Len(t, f.notifier.titles(), 3, "one failure notice per abandoned item")
}

func TestQueue_FailedItemKeepsPosition(t *testing.T) {
	f := newQueueFixture(t)
	f.transport.failing["update"] = errors.New("flaky")

	f.enqueue(t, "create", map[string]string{"id": "a"})
	f.enqueue(t, "update", map[string]string{"id": "b"})
	f.enqueue(t, "delete", map[string]string{"id": "c"})

	require.NoError(t, f.queue.Drain(context.Background()))

	// the failing item stays, the others around it were delivered
	require.Equal(t, 1, f.queue.Len())
	calls := f.transport.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "create", calls[0].action)
	assert.Equal(t, "delete", calls[1].action)

	// once the fault clears the survivor goes through
	delete(f.transport.failing, "update")
	require.NoError(t, f.queue.Drain(context.Background()))
	assert.Equal(t, 0, f.queue.Len())
}

func TestQueue_DrainNoopWhenOffline(t *testing.T) {
	f := newQueueFixture(t)
	f.enqueue(t, "create", map[string]string{"id": "1"})

	f.online = false
	require.NoError(t, f.queue.Drain(context.Background()))

	assert.Empty(t, f.transport.calls())
	assert.Equal(t, 1, f.queue.Len())
	assert.Empty(t, f.synced, "an offline pass records no sync time")
}

func TestQueue_DrainFailsWhenNotConfigured(t *testing.T) {
	f := newQueueFixture(t)
	f.enqueue(t, "create", map[string]string{"id": "1"})
	f.readyErr = question.ErrConfiguration

	err := f.queue.Drain(context.Background())
	assert.ErrorIs(t, err, question.ErrConfiguration)
	assert.Equal(t, []string{"Sync Error"}, f.notifier.titles())
	assert.Equal(t, 1, f.queue.Len())
}

func TestQueue_SingleFlightDrain(t *testing.T) {
	f := newQueueFixture(t)
	f.transport.block = make(chan struct{})

	f.enqueue(t, "create", map[string]string{"id": "1"})
	f.enqueue(t, "create", map[string]string{"id": "2"})

	done := make(chan struct{})
	go func() {
		_ = f.queue.Drain(context.Background())
		close(done)
	}()

	// wait until the first pass is inside the transport
	require.Eventually(t, f.queue.IsDraining, time.Second, time.Millisecond)

	// a concurrent pass returns immediately without sending anything
	require.NoError(t, f.queue.Drain(context.Background()))
	assert.Empty(t, f.transport.calls())

	close(f.transport.block)
	<-done

	assert.Len(t, f.transport.calls(), 2, "items were sent exactly once")
	assert.Equal(t, 0, f.queue.Len())
}

func TestQueue_DrainStopsOnContextCancel(t *testing.T) {
	f := newQueueFixture(t)
	f.enqueue(t, "create", map[string]string{"id": "1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.queue.Drain(ctx))

	assert.Equal(t, 1, f.queue.Len())
	assert.Empty(t, f.synced, "an interrupted pass records no sync time")
}

func TestQueue_ForceSyncFastFails(t *testing.T) {
	f := newQueueFixture(t)

	f.readyErr = question.ErrConfiguration
	err := f.queue.ForceSync(context.Background(), []any{map[string]string{"id": "1"}})
	assert.ErrorIs(t, err, question.ErrConfiguration)
	assert.Equal(t, 0, f.queue.Len(), "nothing enqueued on a fast fail")

	f.readyErr = nil
	f.online = false
	err = f.queue.ForceSync(context.Background(), []any{map[string]string{"id": "1"}})
	assert.ErrorIs(t, err, question.ErrOffline)
	assert.Equal(t, 0, f.queue.Len())
}

func TestQueue_ForceSyncSendsEverythingAsCreate(t *testing.T) {
	f := newQueueFixture(t)

	payloads := []any{
		map[string]string{"id": "1"},
		map[string]string{"id": "2"},
	}
	require.NoError(t, f.queue.ForceSync(context.Background(), payloads))

	calls := f.transport.calls()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.Equal(t, "create", c.action)
	}
	assert.Equal(t, 0, f.queue.Len())
}

func TestQueue_RestartResumesFromStore(t *testing.T) {
	f := newQueueFixture(t)
	f.enqueue(t, "create", map[string]string{"id": "survivor"})

	// a new queue over the same store sees the pending item
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reborn, err := NewQueue(f.store, f.transport, f.notifier,
		func() bool { return true }, func() error { return nil }, nil, log)
	require.NoError(t, err)
	require.Equal(t, 1, reborn.Len())

	require.NoError(t, reborn.Drain(context.Background()))
	assert.Equal(t, 0, reborn.Len())
	require.Len(t, f.transport.calls(), 1)
	assert.Contains(t, f.transport.calls()[0].payload, "survivor")
}
