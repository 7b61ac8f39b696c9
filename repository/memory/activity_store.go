package memory

import (
	"context"
	"sync"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
)

// ActivityStore keeps the global activity log in memory, newest first.
type ActivityStore struct {
	mu         sync.RWMutex
	activities []domain.Activity
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

var _ repository.ActivityRepository = (*ActivityStore)(nil)

// Append prepends the activity so the log stays newest first.
func (s *ActivityStore) Append(ctx context.Context, activity domain.Activity) error {
	if activity.ID == "" {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append([]domain.Activity{activity.Clone()}, s.activities...)
	return nil
}

func (s *ActivityStore) List(ctx context.Context) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, a.Clone())
	}
	return out, nil
}

// Len reports the number of logged activities (monitoring only).
func (s *ActivityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}
