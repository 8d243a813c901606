// Package docstore holds the in-memory document tree (projects with their
// reports, logs, and recipe) and the reducers that mutate it. Soft-deleted
// records keep their place in storage until permanently deleted.
package docstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bgrant/devnotes/internal/domain"
)

// Store owns the project tree for one session. Safe for concurrent access.
type Store struct {
	mu       sync.RWMutex
	projects []domain.Project

	changeMu sync.Mutex
	onChange func()
}

// New creates a store over a copy of projects.
func New(projects []domain.Project) *Store {
	s := &Store{}
	s.replace(projects)
	return s
}

// SetOnChange registers a hook invoked after every successful mutation. The
// sync engine uses it to schedule a debounced push.
func (s *Store) SetOnChange(fn func()) {
	s.changeMu.Lock()
	s.onChange = fn
	s.changeMu.Unlock()
}

func (s *Store) notify() {
	s.changeMu.Lock()
	fn := s.onChange
	s.changeMu.Unlock()
	if fn != nil {
		fn()
	}
}

// Projects returns a copy of the project list. Nested collections are
// shared; callers must treat them as read-only.
func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Serialize returns the canonical JSON form of the whole document: the array
// of projects exactly as stored remotely. Byte-for-byte comparison of two
// Serialize results is how the sync engine detects remote changes.
func (s *Store) Serialize() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := json.Marshal(s.projects)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

// Replace swaps the whole document for the given projects, as a manual
// refresh does. It does not fire the change hook: replacing local state with
// remote state must not immediately push it back.
func (s *Store) Replace(projects []domain.Project) {
	s.replace(projects)
}

func (s *Store) replace(projects []domain.Project) {
	normalized := make([]domain.Project, len(projects))
	copy(normalized, projects)
	for i := range normalized {
		normalized[i].Normalize()
	}
	s.mu.Lock()
	s.projects = normalized
	s.mu.Unlock()
}

// AddProject appends a new project.
func (s *Store) AddProject(title string, category domain.Category, coverImage string) (domain.Project, error) {
	if !category.Valid() {
		return domain.Project{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
	p := domain.Project{
		ID:         domain.NewID(),
		Title:      title,
		Category:   category,
		CoverImage: coverImage,
		CreatedAt:  time.Now().UnixMilli(),
	}
	p.Normalize()

	s.mu.Lock()
	s.projects = append(s.projects, p)
	s.mu.Unlock()
	s.notify()
	return p, nil
}

// UpdateProject replaces the project with the same id.
func (s *Store) UpdateProject(p domain.Project) error {
	p.Normalize()
	s.mu.Lock()
	found := false
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("project %s: %w", p.ID, domain.ErrNotFound)
	}
	s.notify()
	return nil
}

// SetCoverImage updates a project's cover image.
func (s *Store) SetCoverImage(projectID, coverImage string) error {
	return s.mutateProject(projectID, func(p *domain.Project) {
		p.CoverImage = coverImage
	})
}

// SoftDeleteProject flags the project deleted, keeping it in storage.
func (s *Store) SoftDeleteProject(id string) error {
	return s.mutateProject(id, func(p *domain.Project) { p.IsDeleted = true })
}

// RestoreProject clears the project's deleted flag.
func (s *Store) RestoreProject(id string) error {
	return s.mutateProject(id, func(p *domain.Project) { p.IsDeleted = false })
}

// DeleteProject removes the project from storage entirely. Callers gate this
// behind a confirmation step; see Gate.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	}
	s.mu.Unlock()
	if idx < 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	s.notify()
	return nil
}

// SetRecipe replaces the project's recipe wholesale; there is no partial
// recipe update. A nil recipe removes it.
func (s *Store) SetRecipe(projectID string, r *domain.Recipe) error {
	if r != nil && r.Steps == nil {
		r.Steps = []domain.RecipeStep{}
	}
	return s.mutateProject(projectID, func(p *domain.Project) { p.Recipe = r })
}

// mutateProject runs fn on the project under lock, then fires the change
// hook. Returns ErrNotFound if no project has the id.
func (s *Store) mutateProject(id string, fn func(*domain.Project)) error {
	s.mu.Lock()
	var target *domain.Project
	for i := range s.projects {
		if s.projects[i].ID == id {
			target = &s.projects[i]
			break
		}
	}
	if target != nil {
		fn(target)
	}
	s.mu.Unlock()
	if target == nil {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	s.notify()
	return nil
}
