// Package client wires the QuestFlow core together: settings, the active
// persistence backend, the question store, the attachment resolver and the
// sync queue. UI surfaces (the CLI) only ever talk to the App.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"questflow/internal/app/client/config"
	"questflow/internal/domain/question"
	"questflow/internal/notify"
	"questflow/internal/storage"
	"questflow/internal/syncq"
)

const onlineProbeTTL = 30 * time.Second

type App struct {
	config    *config.Config
	log       *slog.Logger
	settings  *SettingsStore
	store     *question.Store
	resolver  *storage.Resolver
	queue     *syncq.Queue
	transport *syncq.HTTPTransport
	notifier  notify.Notifier
	confirmer notify.Confirmer
	qstore    syncq.QueueStore

	connMu     sync.Mutex
	connOnline bool
	connAt     time.Time
	connProbe  bool
}

func New(cfg *config.Config, log *slog.Logger, notifier notify.Notifier, confirmer notify.Confirmer) (*App, error) {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if confirmer == nil {
		confirmer = notify.Noop{}
	}

	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	app := &App{
		config:    cfg,
		log:       log,
		settings:  settings,
		notifier:  notifier,
		confirmer: confirmer,
	}

	backend := app.selectBackend()
	app.store = question.NewStore(backend, log)
	if err := app.store.Load(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	app.resolver = storage.NewResolver(backend)

	app.transport = syncq.NewHTTPTransport(func() (string, string) {
		s := settings.Get()
		return s.APIURL, s.APIKey
	}, log)

	var qstore syncq.QueueStore
	qstore, err = syncq.NewSQLiteStore(cfg.QueuePath)
	if err != nil {
		log.Warn("queue database unavailable, using in-memory queue", "error", err)
		qstore = syncq.NewMemoryStore()
	}
	app.qstore = qstore

	app.queue, err = syncq.NewQueue(qstore, app.transport, notifier,
		app.onlineCached, app.syncReady, app.recordSyncTime, log)
	if err != nil {
		return nil, fmt.Errorf("init sync queue: %w", err)
	}

	app.store.SetEnqueueHook(func(action string, q *question.Question) {
		if !settings.Get().AutoSync {
			return
		}
		if err := app.queue.Enqueue(action, q); err != nil {
			log.Error("enqueue failed", "action", action, "id", q.ID, "error", err)
		}
	})

	log.Debug("client initialized",
		"questions", app.store.Count(),
		"pending_sync", app.queue.Len(),
	)
	return app, nil
}

// selectBackend picks the durable directory backend when a root has been
// chosen and is usable, and the serialized fallback otherwise. The client
// keeps working in fallback mode, just without binary attachment durability.
func (a *App) selectBackend() question.Backend {
	root := a.settings.Get().DirectoryName
	if root != "" {
		backend, err := storage.NewDirBackend(root, a.log)
		if err == nil {
			return backend
		}
		a.log.Warn("directory root unusable, falling back to serialized storage",
			"root", root, "error", err)
		a.notifier.Notify(notify.SeverityWarning, "Storage Degraded",
			"Chosen directory is unavailable; media attachments will not be stored.")
	}
	return storage.NewFallbackBackend(a.config.DataPath, a.log)
}

// UseDirectory adopts a new durable root. The in-memory collection is
// replaced wholesale by the new root's contents; nothing is merged.
func (a *App) UseDirectory(root string) error {
	backend, err := storage.NewDirBackend(root, a.log)
	if err != nil {
		return fmt.Errorf("%w: %v", question.ErrPersistence, err)
	}
	if err := a.store.SwitchBackend(backend); err != nil {
		return err
	}
	a.resolver = storage.NewResolver(backend)
	return a.settings.Update(func(s *Settings) {
		s.DirectoryName = root
	})
}

// Store exposes the question store to the UI layer.
func (a *App) Store() *question.Store {
	return a.store
}

// Resolver exposes the attachment resolver for the active backend.
func (a *App) Resolver() *storage.Resolver {
	return a.resolver
}

// Settings exposes the write-through settings store.
func (a *App) Settings() *SettingsStore {
	return a.settings
}

// Queue exposes the sync queue.
func (a *App) Queue() *syncq.Queue {
	return a.queue
}

// Online probes the remote service and records the result for onlineCached.
func (a *App) Online() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ok := a.transport.Ping(ctx) == nil

	a.connMu.Lock()
	a.connOnline = ok
	a.connAt = time.Now()
	a.connMu.Unlock()
	return ok
}

// onlineCached answers from the last probe result and refreshes it in the
// background when stale. The queue consults this on every enqueue, inside the
// store's mutation path, so it must never wait on the network.
func (a *App) onlineCached() bool {
	a.connMu.Lock()
	stale := time.Since(a.connAt) >= onlineProbeTTL
	if stale && !a.connProbe {
		a.connProbe = true
		go func() {
			a.Online()
			a.connMu.Lock()
			a.connProbe = false
			a.connMu.Unlock()
		}()
	}
	ok := a.connOnline
	a.connMu.Unlock()
	return ok
}

// SyncNow runs one drain pass after a live connectivity probe. The user asked
// for a sync; waiting on a ping here is fine.
func (a *App) SyncNow(ctx context.Context) error {
	a.Online()
	return a.queue.Drain(ctx)
}

// ForceSync re-enqueues every question as a fresh create and drains.
func (a *App) ForceSync(ctx context.Context) error {
	a.Online()
	questions := a.store.List()
	payloads := make([]any, len(questions))
	for i, q := range questions {
		payloads[i] = q
	}
	return a.queue.ForceSync(ctx, payloads)
}

// ClearData wipes all questions and resets settings, keeping the remote
// endpoint and credential. The caller is expected to have confirmed.
func (a *App) ClearData() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	return a.settings.Reset()
}

// Confirm asks the user through the confirmation collaborator.
func (a *App) Confirm(title, body, confirmLabel, cancelLabel string) bool {
	return a.confirmer.Confirm(title, body, confirmLabel, cancelLabel)
}

// Notify raises a user-visible notice.
func (a *App) Notify(severity notify.Severity, title, message string) {
	a.notifier.Notify(severity, title, message)
}

// Close releases the queue database.
func (a *App) Close() error {
	return a.qstore.Close()
}

func (a *App) syncReady() error {
	s := a.settings.Get()
	if s.APIURL == "" || s.APIKey == "" {
		return question.ErrConfiguration
	}
	return nil
}

func (a *App) recordSyncTime(t time.Time) {
	if err := a.settings.Update(func(s *Settings) {
		s.LastSyncTime = &t
	}); err != nil {
		a.log.Warn("last sync time not persisted", "error", err)
	}
}
