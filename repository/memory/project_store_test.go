package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository/memory"
)

func newProject(id, name string, lastActivity time.Time) *domain.Project {
	return &domain.Project{
		ID:             id,
		Name:           name,
		Members:        []domain.User{{ID: "user-alice", DisplayName: "Alice Carter"}},
		LastActivityAt: lastActivity,
	}
}

func TestProjectStore_SnapshotIsolation(t *testing.T) {
	store := memory.NewProjectStore()
	original := newProject("p1", "Renovation", time.Now())
	original.Tasks = []domain.Task{{ID: "t1", Title: "Paint wall"}}
	require.NoError(t, store.Insert(context.Background(), original))

	// Mutating the inserted value must not leak into the store.
	original.Name = "hijacked"
	original.Tasks[0].Title = "hijacked"

	first, err := store.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renovation", first.Name)
	assert.Equal(t, "Paint wall", first.Tasks[0].Title)

	// Mutating one snapshot must not be visible through another.
	first.Tasks[0].Title = "scribbled"
	second, err := store.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Paint wall", second.Tasks[0].Title)
}

func TestProjectStore_GetByIDUnknown(t *testing.T) {
	store := memory.NewProjectStore()
	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectStore_UpsertUnknownIDIsNoOp(t *testing.T) {
	store := memory.NewProjectStore()
	require.NoError(t, store.Insert(context.Background(), newProject("p1", "Renovation", time.Now())))

	err := store.Upsert(context.Background(), newProject("ghost", "Ghost", time.Now()))
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	_, err = store.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectStore_UpsertReplaces(t *testing.T) {
	store := memory.NewProjectStore()
	require.NoError(t, store.Insert(context.Background(), newProject("p1", "Renovation", time.Now())))

	updated := newProject("p1", "Renovation v2", time.Now())
	require.NoError(t, store.Upsert(context.Background(), updated))

	got, err := store.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renovation v2", got.Name)
	assert.Equal(t, 1, store.Len())
}

func TestProjectStore_ListNewestActivityFirst(t *testing.T) {
	store := memory.NewProjectStore()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(context.Background(), newProject("p-old", "Old", base)))
	require.NoError(t, store.Insert(context.Background(), newProject("p-new", "New", base.Add(time.Hour))))
	require.NoError(t, store.Insert(context.Background(), newProject("p-mid", "Mid", base.Add(time.Minute))))

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "p-new", list[0].ID)
	assert.Equal(t, "p-mid", list[1].ID)
	assert.Equal(t, "p-old", list[2].ID)
}

func TestProjectStore_SubscribeNotifies(t *testing.T) {
	store := memory.NewProjectStore()
	var seen []string
	store.Subscribe(func(projectID string) {
		seen = append(seen, projectID)
	})
	assert.Equal(t, 1, store.Listeners())

	require.NoError(t, store.Insert(context.Background(), newProject("p1", "Renovation", time.Now())))
	require.NoError(t, store.Upsert(context.Background(), newProject("p1", "Renovation v2", time.Now())))
	require.NoError(t, store.Delete(context.Background(), "p1"))
	// An upsert that no-ops must not notify.
	require.NoError(t, store.Upsert(context.Background(), newProject("ghost", "Ghost", time.Now())))

	assert.Equal(t, []string{"p1", "p1", "p1"}, seen)
}

func TestProjectStore_Delete(t *testing.T) {
	store := memory.NewProjectStore()
	require.NoError(t, store.Insert(context.Background(), newProject("p1", "Renovation", time.Now())))

	require.NoError(t, store.Delete(context.Background(), "p1"))
	assert.Equal(t, 0, store.Len())
	assert.ErrorIs(t, store.Delete(context.Background(), "p1"), domain.ErrProjectNotFound)
}

func TestActivityStore_NewestFirst(t *testing.T) {
	store := memory.NewActivityStore()
	for _, id := range []string{"a1", "a2", "a3"} {
		require.NoError(t, store.Append(context.Background(), domain.Activity{
			ID:    id,
			Type:  domain.ActivityMessageSent,
			Actor: domain.User{ID: "user-alice"},
		}))
	}

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a3", list[0].ID)
	assert.Equal(t, "a1", list[2].ID)
	assert.Equal(t, 3, store.Len())
}

func TestActivityStore_RejectsMissingID(t *testing.T) {
	store := memory.NewActivityStore()
	err := store.Append(context.Background(), domain.Activity{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestUserStore(t *testing.T) {
	store := memory.NewUserStore()
	alice := domain.User{ID: "user-alice", DisplayName: "Alice Carter"}
	bob := domain.User{ID: "user-bob", DisplayName: "Bob Lindqvist"}
	require.NoError(t, store.Upsert(context.Background(), &alice))
	require.NoError(t, store.Upsert(context.Background(), &bob))

	got, err := store.GetByID(context.Background(), "user-alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Carter", got.DisplayName)

	_, err = store.GetByID(context.Background(), "user-nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Registration order, not map order.
	assert.Equal(t, "user-alice", list[0].ID)
	assert.Equal(t, "user-bob", list[1].ID)
}
