// Package activity derives the cross-project activity feed.
package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
)

// Feed is the read-side aggregator over the global activity log. It is
// never written to directly; the engines record entries as side effects.
type Feed struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

func New(activities repository.ActivityRepository, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		activities: activities,
		logger:     logger,
	}
}

// For returns the feed for one user: everything others did, newest first,
// never the user's own actions. A full scan is fine at this scale.
func (f *Feed) For(ctx context.Context, userID string) ([]domain.Activity, error) {
	all, err := f.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(all))
	for _, a := range all {
		if a.Actor.ID != userID {
			out = append(out, a)
		}
	}
	return out, nil
}
