package client

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"questflow/internal/app/client/config"
	"questflow/internal/domain/question"
)

func newTestApp(t *testing.T, apiURL string) *App {
	t.Helper()
	dir := t.TempDir()
	if apiURL != "" {
		settings := fmt.Sprintf(`{"apiUrl":%q,"apiKey":"key","autoSync":true}`, apiURL)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(settings), 0o600))
	}

	cfg := &config.Config{
		Env:          "local",
		ConfigDir:    dir,
		SettingsPath: filepath.Join(dir, "settings.json"),
		DataPath:     filepath.Join(dir, "questions.json"),
		QueuePath:    filepath.Join(dir, "queue.db"),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := New(cfg, log, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestApp_MutationsDoNotWaitOnConnectivityProbe(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			<-release
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	app := newTestApp(t, srv.URL)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := app.Store().Create(&question.Question{
			Kind: question.KindTrueFalse,
			Body: "answered without waiting",
		})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("create waited on the connectivity probe")
	}
	assert.Equal(t, 1, app.Queue().Len(), "mutation still enqueued for sync")
}

func TestApp_OnlineRefreshesCachedState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL)

	// before any probe the cached answer is offline
	app.connMu.Lock()
	cached := app.connOnline
	app.connMu.Unlock()
	assert.False(t, cached)

	require.True(t, app.Online())

	assert.True(t, app.onlineCached(), "live probe result feeds the cache")
}
