package question

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Merge reconciles an externally supplied question set against the local
// collection. Unknown ids are inserted; known ids are replaced only when the
// incoming updatedAt is strictly newer (ties keep the local copy). Returns the
// number of questions inserted or replaced. Merge never feeds the sync queue.
func (s *Store) Merge(incoming []*Question) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := 0
	for _, in := range incoming {
		if in == nil || in.ID == "" {
			return merged, fmt.Errorf("%w: question without id", ErrInvalidFormat)
		}
		q := in.Clone()

		local, exists := s.index[q.ID]
		if !exists {
			s.items = append(s.items, q)
			s.index[q.ID] = q
			if err := s.backend.SaveQuestion(q, s.items); err != nil {
				s.items = s.items[:len(s.items)-1]
				delete(s.index, q.ID)
				s.log.Error("merge insert not persisted, skipped", "id", q.ID, "error", err)
				continue
			}
			merged++
			continue
		}

		if !q.UpdatedAt.After(local.UpdatedAt) {
			continue
		}
		prev := local.Clone()
		*local = *q
		if err := s.backend.SaveQuestion(local, s.items); err != nil {
			*local = *prev
			s.log.Error("merge replace not persisted, skipped", "id", q.ID, "error", err)
			continue
		}
		merged++
	}

	s.log.Info("merge finished", "incoming", len(incoming), "merged", merged)
	return merged, nil
}

// ExportJSON serializes the whole collection as one ordered array. Media
// descriptors carry metadata only, never inline bytes.
func (s *Store) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.List(), "", "  ")
}

// ImportJSON parses an exported payload and merges it. A payload whose top
// level is not an array of question objects fails with ErrInvalidFormat and
// leaves the collection untouched.
func (s *Store) ImportJSON(data []byte) (int, error) {
	// json.Unmarshal maps a top-level null to a nil slice without error, so
	// the array shape has to be checked before decoding.
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, fmt.Errorf("%w: top-level value is not an array", ErrInvalidFormat)
	}
	var incoming []*Question
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for _, q := range incoming {
		if q == nil || q.ID == "" {
			return 0, fmt.Errorf("%w: question without id", ErrInvalidFormat)
		}
	}
	return s.Merge(incoming)
}
