package monitor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/internal/monitor"
	"github.com/teamspace/backend/repository/memory"
)

func TestMonitorRefreshesStatus(t *testing.T) {
	projects := memory.NewProjectStore()
	users := memory.NewUserStore()
	activities := memory.NewActivityStore()

	require.NoError(t, projects.Insert(context.Background(), &domain.Project{ID: "p1", Name: "Renovation"}))
	require.NoError(t, users.Upsert(context.Background(), &domain.User{ID: "user-alice"}))
	require.NoError(t, activities.Append(context.Background(), domain.Activity{ID: "a1", Type: domain.ActivityTaskCreated}))
	projects.Subscribe(func(string) {})

	m := monitor.New(projects, users, activities, 10*time.Millisecond, nil)
	m.Start()
	defer m.Stop()

	assert.Eventually(t, func() bool {
		status := m.GetStatus()
		return status.Projects == 1 &&
			status.Users == 1 &&
			status.Activities == 1 &&
			status.Listeners == 1 &&
			!status.LastCheck.IsZero()
	}, time.Second, 5*time.Millisecond)
}
