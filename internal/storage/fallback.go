package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"questflow/internal/domain/question"
)

// FallbackBackend serializes the whole collection into a single JSON file on
// every change. It cannot hold attachment bytes: media descriptors keep their
// metadata, inline bytes are dropped on save, and ReadMedia always fails.
type FallbackBackend struct {
	path string
	log  *slog.Logger
}

func NewFallbackBackend(path string, log *slog.Logger) *FallbackBackend {
	return &FallbackBackend{path: path, log: log}
}

func (b *FallbackBackend) SupportsBinary() bool { return false }

func (b *FallbackBackend) SaveQuestion(_ *question.Question, all []*question.Question) error {
	return b.writeAll(all)
}

func (b *FallbackBackend) DeleteQuestion(_ *question.Question, all []*question.Question) error {
	return b.writeAll(all)
}

func (b *FallbackBackend) LoadAll() ([]*question.Question, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fallback file: %w", err)
	}
	var out []*question.Question
	if err := json.Unmarshal(data, &out); err != nil {
		b.log.Warn("fallback file corrupt, starting empty", "error", err)
		return nil, nil
	}
	return out, nil
}

func (b *FallbackBackend) ReadMedia(path string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", question.ErrUnavailable, path)
}

func (b *FallbackBackend) Clear() error {
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove fallback file: %w", err)
	}
	return nil
}

func (b *FallbackBackend) writeAll(all []*question.Question) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write fallback file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename fallback file: %w", err)
	}
	return nil
}
