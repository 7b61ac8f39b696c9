// Package seed populates the workspace with demonstration data. All
// fixtures go through the public engine operations, so seeded state is
// indistinguishable from state created organically.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
	lifecycleUC "github.com/teamspace/backend/usecase/lifecycle"
	messagingUC "github.com/teamspace/backend/usecase/messaging"
)

type Seeder struct {
	users     repository.UserRepository
	projects  repository.ProjectRepository
	lifecycle *lifecycleUC.Engine
	messaging *messagingUC.Engine
	logger    *zap.Logger
}

func New(users repository.UserRepository, projects repository.ProjectRepository, lc *lifecycleUC.Engine, msg *messagingUC.Engine, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		users:     users,
		projects:  projects,
		lifecycle: lc,
		messaging: msg,
		logger:    logger,
	}
}

// Run registers the demo users and builds two projects with tasks,
// subtasks and a bit of chat history.
func (s *Seeder) Run(ctx context.Context) error {
	now := time.Now()
	alice := domain.User{ID: uuid.NewString(), DisplayName: "Alice Carter", Handle: "alice", CreatedAt: now}
	bob := domain.User{ID: uuid.NewString(), DisplayName: "Bob Lindqvist", Handle: "bob", CreatedAt: now}
	carol := domain.User{ID: uuid.NewString(), DisplayName: "Carol Mendes", Handle: "carol", CreatedAt: now}

	for _, user := range []domain.User{alice, bob, carol} {
		u := user
		if err := s.users.Upsert(ctx, &u); err != nil {
			return err
		}
	}

	renovation := &domain.Project{
		ID:             uuid.NewString(),
		Name:           "Apartment Renovation",
		Description:    "Everything for the spring renovation push",
		Members:        []domain.User{alice, bob, carol},
		LastActivityAt: now,
	}
	if err := s.projects.Insert(ctx, renovation); err != nil {
		return err
	}

	due := now.AddDate(0, 0, 7)
	if _, err := s.lifecycle.CreateTask(ctx, renovation.ID, alice, lifecycleUC.CreateTaskParams{
		Title:     "Paint the living room",
		Assignees: []domain.User{bob},
		DueDate:   &due,
		Notes:     "Two coats, color code in the shared folder",
		Subtasks: []lifecycleUC.SubtaskParams{
			{Title: "Buy paint and rollers", Assignees: []domain.User{bob}},
			{Title: "Tape the trim"},
		},
	}); err != nil {
		return err
	}
	if _, err := s.lifecycle.CreateTask(ctx, renovation.ID, alice, lifecycleUC.CreateTaskParams{
		Title:     "Order new kitchen counter",
		Assignees: []domain.User{carol},
	}); err != nil {
		return err
	}
	if _, err := s.messaging.SendMessage(ctx, renovation.ID, bob, messagingUC.SendMessageParams{
		Content: "I can start on the painting this weekend",
	}); err != nil {
		return err
	}

	offsite := &domain.Project{
		ID:             uuid.NewString(),
		Name:           "Team Offsite",
		Members:        []domain.User{carol, alice},
		LastActivityAt: now,
	}
	if err := s.projects.Insert(ctx, offsite); err != nil {
		return err
	}
	if _, err := s.lifecycle.CreateTask(ctx, offsite.ID, carol, lifecycleUC.CreateTaskParams{
		Title:     "Book the venue",
		Assignees: []domain.User{alice},
	}); err != nil {
		return err
	}

	s.logger.Info("demo data seeded",
		zap.Strings("projects", []string{renovation.Name, offsite.Name}))
	return nil
}
