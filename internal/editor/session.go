// Package editor owns the working copy of a resume during an editing
// session: partial section updates, array item convenience operations, dirty
// tracking, and save brokering against the resume store.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-builder/internal/types"
)

// Saver persists the full local state of a resume.
type Saver interface {
	UpdateResume(ctx context.Context, r *types.Resume) (*types.Resume, error)
}

// Session is a session-scoped controller over one resume. It is constructed
// when editing begins and torn down on navigation away; there is no shared
// ambient editor state.
type Session struct {
	mu     sync.Mutex
	resume types.Resume
	dirty  bool
	gen    uint64 // bumped on every local edit
	saver  Saver
	saves  singleflight.Group
}

// NewSession starts an editing session over a loaded resume.
func NewSession(saver Saver, r *types.Resume) *Session {
	s := &Session{saver: saver, resume: *r}
	s.resume.Normalize()
	return s
}

// Resume returns a copy of the current local state.
func (s *Session) Resume() types.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume
}

// Dirty reports whether local state differs from the last persisted version.
// The UI uses this for the unsaved-changes warning before navigation.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ApplyPartialUpdate replaces the named top-level section wholesale and marks
// the session dirty. Other sections are untouched. Unknown sections are
// rejected.
func (s *Session) ApplyPartialUpdate(section types.Section, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := types.ApplySection(&s.resume, section, raw); err != nil {
		return err
	}
	s.dirty = true
	s.gen++
	return nil
}

// SetTemplate records the template selection; it rides along with the next
// save.
func (s *Session) SetTemplate(theme string, colorPalette []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume.Template = types.Template{Theme: theme, ColorPalette: colorPalette}
	s.resume.Normalize()
	s.dirty = true
	s.gen++
}

// AddArrayItem appends an item to an array section.
func (s *Session) AddArrayItem(section types.Section, item json.RawMessage) error {
	items, err := s.arrayItems(section)
	if err != nil {
		return err
	}
	return s.replaceArray(section, append(items, item))
}

// RemoveArrayItem removes the item at index from an array section.
func (s *Session) RemoveArrayItem(section types.Section, index int) error {
	items, err := s.arrayItems(section)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range for section %q (len %d)", index, section, len(items))
	}

	next := make([]json.RawMessage, 0, len(items)-1)
	for i, item := range items {
		if i != index {
			next = append(next, item)
		}
	}
	return s.replaceArray(section, next)
}

// UpdateArrayItem shallow-merges the provided fields into the item at index.
// For scalar items (interests) the item is replaced outright.
func (s *Session) UpdateArrayItem(section types.Section, index int, partial json.RawMessage) error {
	items, err := s.arrayItems(section)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range for section %q (len %d)", index, section, len(items))
	}

	var current map[string]json.RawMessage
	if err := json.Unmarshal(items[index], &current); err != nil {
		// Not an object; replace wholesale.
		items[index] = partial
		return s.replaceArray(section, items)
	}

	var updates map[string]json.RawMessage
	if err := json.Unmarshal(partial, &updates); err != nil {
		return fmt.Errorf("failed to decode item update for section %q: %w", section, err)
	}
	for k, v := range updates {
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to encode merged item: %w", err)
	}
	items[index] = merged
	return s.replaceArray(section, items)
}

// Save sends the full local state, including the current template selection,
// to the store. Concurrent Save calls on the session are single-flighted: a
// trigger while a save is in flight joins the running one instead of racing
// it. On success local state adopts the stored record and the dirty flag
// clears, unless an edit landed while the save was in flight; then the edit
// wins and the session stays dirty. On failure local state is left untouched.
func (s *Session) Save(ctx context.Context) (*types.Resume, error) {
	s.mu.Lock()
	snapshot := s.resume
	gen := s.gen
	key := snapshot.ID.String()
	s.mu.Unlock()

	result, err, _ := s.saves.Do(key, func() (any, error) {
		return s.saver.UpdateResume(ctx, &snapshot)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	saved, ok := result.(*types.Resume)
	if !ok || saved == nil {
		return nil, fmt.Errorf("save returned no record")
	}

	s.mu.Lock()
	if s.gen == gen {
		s.resume = *saved
		s.resume.Normalize()
		s.dirty = false
	}
	s.mu.Unlock()
	return saved, nil
}

func (s *Session) arrayItems(section types.Section) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var src any
	switch section {
	case types.SectionWorkExperience:
		src = s.resume.WorkExperience
	case types.SectionEducation:
		src = s.resume.Education
	case types.SectionSkills:
		src = s.resume.Skills
	case types.SectionProjects:
		src = s.resume.Projects
	case types.SectionCertifications:
		src = s.resume.Certifications
	case types.SectionLanguages:
		src = s.resume.Languages
	case types.SectionInterests:
		src = s.resume.Interests
	default:
		return nil, fmt.Errorf("section %q is not an array section", section)
	}

	data, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("failed to encode section %q: %w", section, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode section %q items: %w", section, err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

func (s *Session) replaceArray(section types.Section, items []json.RawMessage) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode section %q: %w", section, err)
	}
	return s.ApplyPartialUpdate(section, raw)
}
