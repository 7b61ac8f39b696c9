package repository

import (
	"context"

	"github.com/teamspace/backend/domain"
)

// ProjectRepository is the single authoritative holder of workspace
// projects. Reads return snapshots; writers replace whole projects so no
// partial mutation is ever observable.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	// Insert adds a new project. The repository does not mint ids.
	Insert(ctx context.Context, project *domain.Project) error
	// Upsert replaces the project with a matching id. A miss is a no-op:
	// creation only ever happens through Insert.
	Upsert(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}
