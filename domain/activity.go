package domain

import "time"

type ActivityType string

const (
	ActivityTaskAssigned  ActivityType = "task_assigned"
	ActivityTaskCompleted ActivityType = "task_completed"
	ActivityTaskReopened  ActivityType = "task_reopened"
	ActivityTaskCreated   ActivityType = "task_created"
	ActivityMessageSent   ActivityType = "message_sent"
)

// Activity is one entry in the global cross-project event log. Write-once
// and append-only; the log is kept newest first.
type Activity struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Actor       User           `json:"actor"`
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name"`
	Task        *TaskReference `json:"task,omitempty"`
	Preview     string         `json:"preview,omitempty"`
}

func (a Activity) Clone() Activity {
	out := a
	if a.Task != nil {
		ref := *a.Task
		out.Task = &ref
	}
	return out
}
