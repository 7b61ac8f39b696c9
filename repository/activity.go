package repository

import (
	"context"

	"github.com/teamspace/backend/domain"
)

// ActivityRepository holds the global append-only activity log, newest
// entry first. Entries are write-once.
type ActivityRepository interface {
	Append(ctx context.Context, activity domain.Activity) error
	List(ctx context.Context) ([]domain.Activity, error)
}
