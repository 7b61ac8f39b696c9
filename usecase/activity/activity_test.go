package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository/memory"
	"github.com/teamspace/backend/usecase/activity"
)

func TestFor_ExcludesOwnActions(t *testing.T) {
	store := memory.NewActivityStore()
	feed := activity.New(store, nil)

	alice := domain.User{ID: "user-alice", DisplayName: "Alice Carter"}
	bob := domain.User{ID: "user-bob", DisplayName: "Bob Lindqvist"}

	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.Activity{
		{ID: "a1", Type: domain.ActivityTaskCreated, Actor: alice, OccurredAt: base},
		{ID: "a2", Type: domain.ActivityMessageSent, Actor: bob, OccurredAt: base.Add(time.Minute)},
		{ID: "a3", Type: domain.ActivityTaskCompleted, Actor: alice, OccurredAt: base.Add(2 * time.Minute)},
		{ID: "a4", Type: domain.ActivityTaskAssigned, Actor: bob, OccurredAt: base.Add(3 * time.Minute)},
	}
	for _, entry := range entries {
		require.NoError(t, store.Append(context.Background(), entry))
	}

	forAlice, err := feed.For(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, forAlice, 2)
	// Newest first, relative order preserved after filtering.
	assert.Equal(t, "a4", forAlice[0].ID)
	assert.Equal(t, "a2", forAlice[1].ID)

	forBob, err := feed.For(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, forBob, 2)
	assert.Equal(t, "a3", forBob[0].ID)
	assert.Equal(t, "a1", forBob[1].ID)
}

func TestFor_UnknownUserSeesEverything(t *testing.T) {
	store := memory.NewActivityStore()
	feed := activity.New(store, nil)

	require.NoError(t, store.Append(context.Background(), domain.Activity{
		ID:    "a1",
		Type:  domain.ActivityTaskCreated,
		Actor: domain.User{ID: "user-alice"},
	}))

	out, err := feed.For(context.Background(), "user-nobody")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestFor_EmptyLog(t *testing.T) {
	feed := activity.New(memory.NewActivityStore(), nil)

	out, err := feed.For(context.Background(), "user-alice")
	require.NoError(t, err)
	assert.Empty(t, out)
}
