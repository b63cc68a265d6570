package storage

import (
	"fmt"
	"strings"

	"questflow/internal/domain/question"
)

// Resolver maps media descriptors to their bytes through the active backend.
type Resolver struct {
	backend question.Backend
}

func NewResolver(backend question.Backend) *Resolver {
	return &Resolver{backend: backend}
}

// Materialize returns the bytes behind a descriptor: inline data for drafts,
// a backend read for stored media. Detached media has no reachable bytes.
func (r *Resolver) Materialize(m question.Media) ([]byte, error) {
	switch m.Stage {
	case question.MediaDraft:
		return m.Data, nil
	case question.MediaStored:
		return r.backend.ReadMedia(m.Path)
	default:
		return nil, fmt.Errorf("%w: %s", question.ErrUnavailable, m.Name)
	}
}

// ExtensionFor derives a filename suffix from the MIME subtype. The mapping
// is frozen: stored media paths already on disk were generated with it.
func ExtensionFor(mediaType string) string {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		format := strings.TrimPrefix(mediaType, "image/")
		if format == "jpeg" {
			return ".jpg"
		}
		return "." + format
	case strings.HasPrefix(mediaType, "audio/"):
		return "." + strings.TrimPrefix(mediaType, "audio/")
	}
	return ""
}
