package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
)

// ChangeListener is notified with the project id after every successful
// insert, upsert or delete. Listeners run synchronously on the writer's
// goroutine; they must not call back into the store.
type ChangeListener func(projectID string)

// ProjectStore is the in-memory Workspace Store. Every read hands out a
// deep clone, so callers hold snapshots and must re-read after mutating
// through the engines.
type ProjectStore struct {
	mu        sync.RWMutex
	projects  map[string]*domain.Project
	order     []string
	listeners []ChangeListener
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[string]*domain.Project),
	}
}

var _ repository.ProjectRepository = (*ProjectStore)(nil)

// Subscribe registers a change listener. There is no unsubscribe; the
// store lives as long as the process.
func (s *ProjectStore) Subscribe(listener ChangeListener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *ProjectStore) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return project.Clone(), nil
}

func (s *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.order))
	for _, id := range s.order {
		if project, ok := s.projects[id]; ok {
			out = append(out, *project.Clone())
		}
	}
	// Most recently active first, insertion order as tiebreak.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivityAt.After(out[j].LastActivityAt)
	})
	return out, nil
}

func (s *ProjectStore) Insert(ctx context.Context, project *domain.Project) error {
	if project == nil || project.ID == "" {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	if _, exists := s.projects[project.ID]; !exists {
		s.order = append(s.order, project.ID)
	}
	s.projects[project.ID] = project.Clone()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, project.ID)
	return nil
}

// Upsert replaces the stored project with a matching id. An unknown id is
// a silent no-op: the store does not mint projects.
func (s *ProjectStore) Upsert(ctx context.Context, project *domain.Project) error {
	if project == nil || project.ID == "" {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	if _, exists := s.projects[project.ID]; !exists {
		s.mu.Unlock()
		return nil
	}
	s.projects[project.ID] = project.Clone()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, project.ID)
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, exists := s.projects[id]; !exists {
		s.mu.Unlock()
		return domain.ErrProjectNotFound
	}
	delete(s.projects, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, id)
	return nil
}

// Len reports the number of stored projects (monitoring only).
func (s *ProjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// Listeners reports the number of registered change listeners.
func (s *ProjectStore) Listeners() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

func (s *ProjectStore) notify(listeners []ChangeListener, projectID string) {
	for _, listener := range listeners {
		listener(projectID)
	}
}
