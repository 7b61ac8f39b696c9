package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teamspace/backend/domain"
)

func TestTaskIsNewFor(t *testing.T) {
	bob := domain.User{ID: "user-bob", DisplayName: "Bob Lindqvist"}

	cases := []struct {
		name         string
		assignees    []domain.User
		acknowledged []string
		want         bool
	}{
		{"assigned and unacknowledged", []domain.User{bob}, nil, true},
		{"assigned and acknowledged", []domain.User{bob}, []string{bob.ID}, false},
		{"not assigned", nil, nil, false},
		{"acknowledged but no longer assigned", nil, []string{bob.ID}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := domain.Task{
				ID:             "t1",
				Assignees:      tc.assignees,
				AcknowledgedBy: tc.acknowledged,
			}
			assert.Equal(t, tc.want, task.IsNewFor(bob.ID))
		})
	}
}

func TestTaskAcknowledgeIsIdempotent(t *testing.T) {
	task := domain.Task{ID: "t1"}
	task.Acknowledge("user-bob")
	task.Acknowledge("user-bob")
	task.Acknowledge("")

	assert.Equal(t, []string{"user-bob"}, task.AcknowledgedBy)
}

func TestTaskRemoveAssigneeKeepsAcknowledgment(t *testing.T) {
	bob := domain.User{ID: "user-bob"}
	task := domain.Task{
		ID:             "t1",
		Assignees:      []domain.User{bob},
		AcknowledgedBy: []string{bob.ID},
	}

	task.RemoveAssignee(bob.ID)
	assert.Empty(t, task.Assignees)
	assert.True(t, task.IsAcknowledgedBy(bob.ID))
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := now.Add(-2 * time.Hour)
	tomorrow := now.AddDate(0, 0, 1)

	cases := []struct {
		name   string
		due    *time.Time
		status domain.TaskStatus
		want   bool
	}{
		{"no due date", nil, domain.StatusPending, false},
		{"due yesterday, pending", &yesterday, domain.StatusPending, true},
		{"due yesterday, done", &yesterday, domain.StatusDone, false},
		{"due earlier today", &earlierToday, domain.StatusPending, false},
		{"due tomorrow", &tomorrow, domain.StatusPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := domain.Task{ID: "t1", DueDate: tc.due, Status: tc.status}
			assert.Equal(t, tc.want, task.IsOverdue(now))
		})
	}
}

func TestSubtaskToggleAssignee(t *testing.T) {
	bob := domain.User{ID: "user-bob"}
	subtask := domain.Subtask{ID: "s1"}

	subtask.ToggleAssignee(bob)
	assert.True(t, subtask.IsAssignee(bob.ID))

	subtask.ToggleAssignee(bob)
	assert.False(t, subtask.IsAssignee(bob.ID))
}

func TestHasTitle(t *testing.T) {
	assert.False(t, domain.HasTitle(""))
	assert.False(t, domain.HasTitle("   \t\n"))
	assert.True(t, domain.HasTitle("  Paint wall  "))
}

func TestTaskCloneDoesNotAlias(t *testing.T) {
	due := time.Now()
	task := domain.Task{
		ID:             "t1",
		Title:          "Paint wall",
		Assignees:      []domain.User{{ID: "user-bob"}},
		DueDate:        &due,
		Subtasks:       []domain.Subtask{{ID: "s1", Title: "Buy paint"}},
		AcknowledgedBy: []string{"user-bob"},
	}

	clone := task.Clone()
	clone.Assignees[0].ID = "changed"
	clone.Subtasks[0].Title = "changed"
	clone.AcknowledgedBy[0] = "changed"
	*clone.DueDate = due.Add(time.Hour)

	assert.Equal(t, "user-bob", task.Assignees[0].ID)
	assert.Equal(t, "Buy paint", task.Subtasks[0].Title)
	assert.Equal(t, "user-bob", task.AcknowledgedBy[0])
	assert.True(t, task.DueDate.Equal(due))
}
