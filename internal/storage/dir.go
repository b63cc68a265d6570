// Package storage holds the persistence backends the question store writes
// through: a durable directory backend that stores media natively and a
// serialized fallback used when no directory root has been chosen.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/slog"

	"questflow/internal/domain/question"
)

const mediaFolder = "media"

// DirBackend keeps one JSON file per question under the root plus a media
// subdirectory for attachment bytes.
type DirBackend struct {
	root string
	log  *slog.Logger
}

func NewDirBackend(root string, log *slog.Logger) (*DirBackend, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	return &DirBackend{root: root, log: log}, nil
}

// Root returns the directory this backend writes to.
func (b *DirBackend) Root() string {
	return b.root
}

func (b *DirBackend) SupportsBinary() bool { return true }

// SaveQuestion writes the question's metadata file. Draft media is first
// written under media/ as <id>_<index><ext> and the descriptor rewritten to
// reference the stored path, so the metadata file never carries bytes.
func (b *DirBackend) SaveQuestion(q *question.Question, _ []*question.Question) error {
	for i := range q.Media {
		m := &q.Media[i]
		if m.Stage != question.MediaDraft {
			continue
		}
		if err := os.MkdirAll(filepath.Join(b.root, mediaFolder), 0o700); err != nil {
			return fmt.Errorf("create media dir: %w", err)
		}
		name := fmt.Sprintf("%s_%d%s", q.ID, i, ExtensionFor(m.Type))
		if err := os.WriteFile(filepath.Join(b.root, mediaFolder, name), m.Data, 0o600); err != nil {
			return fmt.Errorf("write media %s: %w", name, err)
		}
		*m = question.NewStoredMedia(m.Type, m.Name, mediaFolder+"/"+name)
	}

	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	return b.writeFile(q.ID+".json", data)
}

// DeleteQuestion removes the metadata file and, best effort, every stored
// media file. A metadata file that is already gone is not an error.
func (b *DirBackend) DeleteQuestion(q *question.Question, _ []*question.Question) error {
	if err := os.Remove(filepath.Join(b.root, q.ID+".json")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove question file: %w", err)
	}
	for _, m := range q.Media {
		if m.Stage != question.MediaStored {
			continue
		}
		if err := os.Remove(filepath.Join(b.root, filepath.FromSlash(m.Path))); err != nil && !os.IsNotExist(err) {
			b.log.Warn("media file not removed", "path", m.Path, "error", err)
		}
	}
	return nil
}

// LoadAll parses every question file under the root. A corrupt file is logged
// and skipped, never fatal. The result is ordered by creation time so the
// store's listing order survives a reload.
func (b *DirBackend) LoadAll() ([]*question.Question, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, fmt.Errorf("read root: %w", err)
	}

	var out []*question.Question
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(b.root, e.Name()))
		if err != nil {
			b.log.Warn("question file not readable, skipped", "file", e.Name(), "error", err)
			continue
		}
		var q question.Question
		if err := json.Unmarshal(data, &q); err != nil || q.ID == "" {
			b.log.Warn("question file corrupt, skipped", "file", e.Name(), "error", err)
			continue
		}
		out = append(out, &q)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ReadMedia reads attachment bytes by their backend-relative path.
func (b *DirBackend) ReadMedia(path string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("media path escapes root: %s", path)
	}
	data, err := os.ReadFile(filepath.Join(b.root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", question.ErrUnavailable, path)
		}
		return nil, fmt.Errorf("read media: %w", err)
	}
	return data, nil
}

// Clear removes every question file and the media directory.
func (b *DirBackend) Clear() error {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return fmt.Errorf("read root: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			if err := os.Remove(filepath.Join(b.root, e.Name())); err != nil {
				return fmt.Errorf("remove %s: %w", e.Name(), err)
			}
		}
	}
	if err := os.RemoveAll(filepath.Join(b.root, mediaFolder)); err != nil {
		b.log.Warn("media directory not removed", "error", err)
	}
	return nil
}

// writeFile writes through a temp file and renames, so a crash mid-write
// cannot leave a truncated question file behind.
func (b *DirBackend) writeFile(name string, data []byte) error {
	tmp := filepath.Join(b.root, "."+name+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(b.root, name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
