package memory

import (
	"context"
	"sync"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
)

// UserStore is the in-memory user registry.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
	order []string
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]domain.User),
	}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.order))
	for _, id := range s.order {
		if user, ok := s.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *UserStore) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.ID]; !exists {
		s.order = append(s.order, user.ID)
	}
	s.users[user.ID] = *user
	return nil
}

// Len reports the number of registered users (monitoring only).
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
