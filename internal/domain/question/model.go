package question

import (
	"encoding/json"
	"time"
)

// Question is a single quiz item, the unit the store manages.
type Question struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Body      string    `json:"question"`
	Choices   []string  `json:"options,omitempty"`
	Answer    *int      `json:"answer,omitempty"`
	Media     []Media   `json:"media,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. Mutating the copy never touches the original.
func (q *Question) Clone() *Question {
	cp := *q
	if q.Choices != nil {
		cp.Choices = append([]string(nil), q.Choices...)
	}
	if q.Answer != nil {
		a := *q.Answer
		cp.Answer = &a
	}
	if q.Media != nil {
		cp.Media = make([]Media, len(q.Media))
		for i, m := range q.Media {
			cp.Media[i] = m.clone()
		}
	}
	return &cp
}

// MediaStage tracks where a media item's bytes currently live.
type MediaStage int

const (
	// MediaDraft carries its bytes inline, not yet written to a backend.
	MediaDraft MediaStage = iota
	// MediaStored references a file under the durable root.
	MediaStored
	// MediaDetached has metadata only; the bytes are not reachable.
	MediaDetached
)

// Media is an attachment descriptor owned by its parent Question. The stage
// tag is authoritative: a draft holds bytes, a stored item holds a path, a
// detached item holds neither.
type Media struct {
	Stage MediaStage `json:"-"`
	Type  string     `json:"type"`
	Name  string     `json:"name,omitempty"`
	Path  string     `json:"path,omitempty"`
	Data  []byte     `json:"-"`
}

// NewDraftMedia builds a pre-persistence attachment carrying inline bytes.
func NewDraftMedia(mediaType, name string, data []byte) Media {
	return Media{Stage: MediaDraft, Type: mediaType, Name: name, Data: data}
}

// NewStoredMedia builds an attachment referencing a backend-relative path.
func NewStoredMedia(mediaType, name, path string) Media {
	return Media{Stage: MediaStored, Type: mediaType, Name: name, Path: path}
}

func (m Media) clone() Media {
	cp := m
	if m.Data != nil {
		cp.Data = append([]byte(nil), m.Data...)
	}
	return cp
}

type mediaJSON struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

// MarshalJSON never emits inline bytes; a draft serializes as detached
// metadata. Backends that can hold the bytes rewrite the stage before saving.
func (m Media) MarshalJSON() ([]byte, error) {
	out := mediaJSON{Type: m.Type, Name: m.Name}
	if m.Stage == MediaStored {
		out.Path = m.Path
	}
	return json.Marshal(out)
}

func (m *Media) UnmarshalJSON(data []byte) error {
	var in mediaJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Media{Type: in.Type, Name: in.Name, Path: in.Path, Stage: MediaDetached}
	if in.Path != "" {
		m.Stage = MediaStored
	}
	return nil
}
