package repository

import (
	"context"

	"github.com/teamspace/backend/domain"
)

// UserRepository is the fixed user registry. Upsert exists for seeding and
// display-name edits; identity is never re-minted.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
