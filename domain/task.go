package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusDone    TaskStatus = "done"
)

// Task is a unit of work inside a project. Assignment is multi-user;
// acknowledgment ("I have seen and accepted this") is tracked per user
// and is independent of the transient unread state held on the project.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Assignees      []User       `json:"assignees,omitempty"`
	Status         TaskStatus   `json:"status"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	LastActivityAt time.Time    `json:"last_activity_at"`
	Subtasks       []Subtask    `json:"subtasks,omitempty"`
	Attachments    []Attachment `json:"attachments,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	Creator        *User        `json:"creator,omitempty"`
	AcknowledgedBy []string     `json:"acknowledged_by,omitempty"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

func (t *Task) IsAssignee(userID string) bool {
	if t == nil {
		return false
	}
	for _, u := range t.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func (t *Task) IsAcknowledgedBy(userID string) bool {
	if t == nil {
		return false
	}
	for _, id := range t.AcknowledgedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// IsNewFor reports whether the task still sits in the user's "new task
// inbox": assigned to them and not yet accepted or declined. Derived on
// demand, never cached.
func (t *Task) IsNewFor(userID string) bool {
	return t.IsAssignee(userID) && !t.IsAcknowledgedBy(userID)
}

// Acknowledge records that the user has accepted the assignment.
// Idempotent; acknowledgment is durable and only disappears with the task.
func (t *Task) Acknowledge(userID string) {
	if t == nil || userID == "" || t.IsAcknowledgedBy(userID) {
		return
	}
	t.AcknowledgedBy = append(t.AcknowledgedBy, userID)
}

// RemoveAssignee drops the user from the assignee list. Acknowledgment
// state is deliberately left untouched.
func (t *Task) RemoveAssignee(userID string) {
	if t == nil {
		return
	}
	kept := t.Assignees[:0]
	for _, u := range t.Assignees {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	t.Assignees = kept
}

// IsOverdue reports whether the task has a due date in the past and is
// still pending. "Past" means before the start of today in local time, so
// a task due earlier today is not yet overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.DueDate == nil || t.Status != StatusPending {
		return false
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(startOfDay)
}

func (t *Task) FindSubtask(subtaskID string) *Subtask {
	if t == nil {
		return nil
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			return &t.Subtasks[i]
		}
	}
	return nil
}

func (t *Task) Touch(at time.Time) {
	if t == nil {
		return
	}
	t.LastActivityAt = at
}

// Clone returns a deep copy so store snapshots never alias live state.
func (t *Task) Clone() Task {
	if t == nil {
		return Task{}
	}
	out := *t
	out.Assignees = append([]User(nil), t.Assignees...)
	out.AcknowledgedBy = append([]string(nil), t.AcknowledgedBy...)
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.Creator != nil {
		creator := *t.Creator
		out.Creator = &creator
	}
	out.Subtasks = make([]Subtask, 0, len(t.Subtasks))
	for i := range t.Subtasks {
		out.Subtasks = append(out.Subtasks, t.Subtasks[i].Clone())
	}
	out.Attachments = append([]Attachment(nil), t.Attachments...)
	return out
}

// Subtask is a checklist item owned by exactly one task.
type Subtask struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Done        bool         `json:"done"`
	Assignees   []User       `json:"assignees,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Creator     *User        `json:"creator,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func (s *Subtask) IsAssignee(userID string) bool {
	if s == nil {
		return false
	}
	for _, u := range s.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// ToggleAssignee adds the user to the subtask's assignee list, or removes
// them if already present.
func (s *Subtask) ToggleAssignee(user User) {
	if s == nil {
		return
	}
	for i, u := range s.Assignees {
		if u.ID == user.ID {
			s.Assignees = append(s.Assignees[:i], s.Assignees[i+1:]...)
			return
		}
	}
	s.Assignees = append(s.Assignees, user)
}

func (s *Subtask) Clone() Subtask {
	if s == nil {
		return Subtask{}
	}
	out := *s
	out.Assignees = append([]User(nil), s.Assignees...)
	if s.DueDate != nil {
		due := *s.DueDate
		out.DueDate = &due
	}
	if s.Creator != nil {
		creator := *s.Creator
		out.Creator = &creator
	}
	out.Attachments = append([]Attachment(nil), s.Attachments...)
	return out
}

// HasTitle reports whether a candidate title survives trimming. Empty
// titles make create/update operations silent no-ops.
func HasTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
