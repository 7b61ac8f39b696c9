package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teamspace/backend/domain"
)

func memberProject() *domain.Project {
	return &domain.Project{
		ID:   "p1",
		Name: "Renovation",
		Members: []domain.User{
			{ID: "user-alice", DisplayName: "Alice Carter"},
			{ID: "user-bob", DisplayName: "Bob Lindqvist"},
		},
	}
}

func TestProjectUnreadLifecycle(t *testing.T) {
	p := memberProject()

	p.MarkTaskUnread("user-bob", "t1")
	p.MarkTaskUnread("user-bob", "t1") // dedup
	p.MarkTaskUnread("user-bob", "t2")
	assert.True(t, p.IsTaskUnread("user-bob", "t1"))
	assert.Equal(t, []string{"t1", "t2"}, p.UnreadTasks["user-bob"])

	p.MarkTaskRead("user-bob", "t1")
	assert.False(t, p.IsTaskUnread("user-bob", "t1"))
	assert.True(t, p.IsTaskUnread("user-bob", "t2"))

	// Clearing the last id removes the member's key entirely.
	p.MarkTaskRead("user-bob", "t2")
	_, present := p.UnreadTasks["user-bob"]
	assert.False(t, present)
}

func TestProjectUnreadIgnoresNonMembers(t *testing.T) {
	p := memberProject()
	p.MarkTaskUnread("user-stranger", "t1")
	assert.False(t, p.IsTaskUnread("user-stranger", "t1"))
	assert.Empty(t, p.UnreadTasks)
}

func TestProjectPurgeUnread(t *testing.T) {
	p := memberProject()
	p.MarkTaskUnread("user-alice", "t1")
	p.MarkTaskUnread("user-bob", "t1")
	p.MarkTaskUnread("user-bob", "t2")

	p.PurgeUnread("t1")
	assert.False(t, p.IsTaskUnread("user-alice", "t1"))
	assert.False(t, p.IsTaskUnread("user-bob", "t1"))
	assert.True(t, p.IsTaskUnread("user-bob", "t2"))
	_, present := p.UnreadTasks["user-alice"]
	assert.False(t, present)
}

func TestProjectAdminID(t *testing.T) {
	p := memberProject()
	assert.Equal(t, "user-alice", p.AdminID())
	assert.Empty(t, (&domain.Project{}).AdminID())
}

func TestProjectTouch(t *testing.T) {
	p := memberProject()
	at := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	p.Touch("Bob: hello", at)
	assert.Equal(t, "Bob: hello", p.Preview)
	assert.Equal(t, at, p.LastActivityAt)

	// An empty preview advances the clock without clobbering the text.
	later := at.Add(time.Hour)
	p.Touch("", later)
	assert.Equal(t, "Bob: hello", p.Preview)
	assert.Equal(t, later, p.LastActivityAt)
}

func TestProjectGroupAttachmentsByTask(t *testing.T) {
	p := memberProject()
	p.Attachments = []domain.Attachment{
		{ID: "a1", FileName: "wall.jpg", TaskID: "t1"},
		{ID: "a2", FileName: "floor.jpg", TaskID: "t1"},
		{ID: "a3", FileName: "quote.pdf"},
	}

	groups := p.GroupAttachmentsByTask()
	assert.Len(t, groups["t1"], 2)
	assert.Len(t, groups[""], 1)
	assert.True(t, p.Attachments[2].IsUngrouped())
}

func TestProjectCloneDoesNotAlias(t *testing.T) {
	p := memberProject()
	p.Tasks = []domain.Task{{ID: "t1", Title: "Paint wall"}}
	p.MarkTaskUnread("user-bob", "t1")

	clone := p.Clone()
	clone.Tasks[0].Title = "changed"
	clone.UnreadTasks["user-bob"][0] = "changed"
	clone.Members[0].DisplayName = "changed"

	assert.Equal(t, "Paint wall", p.Tasks[0].Title)
	assert.Equal(t, "t1", p.UnreadTasks["user-bob"][0])
	assert.Equal(t, "Alice Carter", p.Members[0].DisplayName)
}
