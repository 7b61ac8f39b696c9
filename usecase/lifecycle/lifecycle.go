// Package lifecycle implements the task and subtask state machine: status
// transitions, assignment, per-user acknowledgment and the unread-task
// inbox.
//
// Unread policy: creating or toggling a task re-marks it unread for every
// member except the actor; subtask edits and plain chat messages never
// touch unread sets. The unread badge means "the task itself changed under
// you", not "activity happened nearby".
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
)

// Engine mutates projects inside the workspace store. Every operation
// reads a fresh snapshot, mutates it and funnels the result through
// Upsert, so no partial write is ever observable.
//
// Validation failures (empty titles) and stale ids inside a project are
// silent no-ops: the unchanged snapshot comes back with a nil error.
type Engine struct {
	projects   repository.ProjectRepository
	activities repository.ActivityRepository
	logger     *zap.Logger

	now   func() time.Time
	newID func() string
}

func New(projects repository.ProjectRepository, activities repository.ActivityRepository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		projects:   projects,
		activities: activities,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

type SubtaskParams struct {
	Title       string
	Description string
	Assignees   []domain.User
	DueDate     *time.Time
}

type CreateTaskParams struct {
	Title       string
	Assignees   []domain.User
	Subtasks    []SubtaskParams
	DueDate     *time.Time
	Notes       string
	Attachments []domain.Attachment
}

// CreateTask appends a new task to the project, announces it with a system
// message and marks it unread for every member except the creator. An
// empty title after trimming makes the whole call a no-op.
func (e *Engine) CreateTask(ctx context.Context, projectID string, actor domain.User, params CreateTaskParams) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.HasTitle(params.Title) {
		return project, nil
	}

	now := e.now()
	title := strings.TrimSpace(params.Title)
	creator := actor
	task := domain.Task{
		ID:             e.newID(),
		Title:          title,
		Assignees:      append([]domain.User(nil), params.Assignees...),
		Status:         domain.StatusPending,
		DueDate:        params.DueDate,
		CreatedAt:      now,
		LastActivityAt: now,
		Notes:          params.Notes,
		Creator:        &creator,
		Attachments:    append([]domain.Attachment(nil), params.Attachments...),
	}
	for _, sub := range params.Subtasks {
		if !domain.HasTitle(sub.Title) {
			continue
		}
		task.Subtasks = append(task.Subtasks, domain.Subtask{
			ID:          e.newID(),
			Title:       strings.TrimSpace(sub.Title),
			Description: sub.Description,
			Assignees:   append([]domain.User(nil), sub.Assignees...),
			DueDate:     sub.DueDate,
			Creator:     &creator,
			CreatedAt:   now,
		})
	}

	content := fmt.Sprintf("created task %q", title)
	message := domain.NewMessage(e.newID(), content, actor, now)
	message.Task = task.Reference()

	project.Tasks = append(project.Tasks, task)
	project.Messages = append(project.Messages, message)
	project.Touch(content, now)
	for _, member := range project.Members {
		if member.ID != actor.ID {
			project.MarkTaskUnread(member.ID, task.ID)
		}
	}

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}

	e.record(ctx, domain.ActivityTaskCreated, actor, project, task.Reference(), content)
	if len(task.Assignees) > 0 {
		e.record(ctx, domain.ActivityTaskAssigned, actor, project, task.Reference(), "")
	}
	e.logger.Info("task created",
		zap.String("project_id", project.ID),
		zap.String("task_id", task.ID),
		zap.Int("assignees", len(task.Assignees)))
	return project, nil
}

type UpdateTaskParams struct {
	Title     string
	Assignees []domain.User
	DueDate   *time.Time
	Notes     string
}

// UpdateTask edits title, assignees, due date and notes in place. Newly
// added assignees get the task marked unread. An empty title makes the
// call a no-op; a missing task id does too.
func (e *Engine) UpdateTask(ctx context.Context, projectID string, actor domain.User, taskID string, params UpdateTaskParams) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil || !domain.HasTitle(params.Title) {
		return project, nil
	}

	previous := make(map[string]bool, len(task.Assignees))
	for _, u := range task.Assignees {
		previous[u.ID] = true
	}

	now := e.now()
	task.Title = strings.TrimSpace(params.Title)
	task.Assignees = append([]domain.User(nil), params.Assignees...)
	task.DueDate = params.DueDate
	task.Notes = params.Notes
	task.Touch(now)
	project.Touch("", now)

	var added bool
	for _, u := range task.Assignees {
		if !previous[u.ID] {
			added = true
			project.MarkTaskUnread(u.ID, task.ID)
		}
	}

	ref := task.Reference()
	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	if added {
		e.record(ctx, domain.ActivityTaskAssigned, actor, project, ref, "")
	}
	return project, nil
}

// DeleteTask removes the task and purges its id from every member's
// unread set. A missing task id is a no-op.
func (e *Engine) DeleteTask(ctx context.Context, projectID string, actor domain.User, taskID string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return project, nil
	}

	title := project.Tasks[idx].Title
	project.Tasks = append(project.Tasks[:idx], project.Tasks[idx+1:]...)
	project.PurgeUnread(taskID)
	project.Touch(fmt.Sprintf("deleted task %q", title), e.now())

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	e.logger.Info("task deleted", zap.String("project_id", project.ID), zap.String("task_id", taskID))
	return project, nil
}

// ToggleStatus flips pending/done, announces the transition and re-marks
// the task unread for everyone but the actor.
func (e *Engine) ToggleStatus(ctx context.Context, projectID string, actor domain.User, taskID string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}

	now := e.now()
	activityType := domain.ActivityTaskCompleted
	verb := "completed"
	if task.Status == domain.StatusDone {
		task.Status = domain.StatusPending
		activityType = domain.ActivityTaskReopened
		verb = "reopened"
	} else {
		task.Status = domain.StatusDone
	}
	task.Touch(now)

	content := fmt.Sprintf("%s %q", verb, task.Title)
	message := domain.NewMessage(e.newID(), content, actor, now)
	message.Task = task.Reference()
	project.Messages = append(project.Messages, message)
	project.Touch(content, now)
	for _, member := range project.Members {
		if member.ID != actor.ID {
			project.MarkTaskUnread(member.ID, task.ID)
		}
	}

	ref := task.Reference()
	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	e.record(ctx, activityType, actor, project, ref, content)
	return project, nil
}

// AcceptTask records the actor's acknowledgment and posts an acceptance
// chat message. The assignee list is not altered.
func (e *Engine) AcceptTask(ctx context.Context, projectID string, actor domain.User, taskID, note string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}

	now := e.now()
	task.Acknowledge(actor.ID)
	task.Touch(now)

	content := "✓ Accepted"
	if note = strings.TrimSpace(note); note != "" {
		content = "✓ Accepted: " + note
	}
	message := domain.NewMessage(e.newID(), content, actor, now)
	message.Mine = true
	message.Task = task.Reference()
	project.Messages = append(project.Messages, message)
	project.Touch(fmt.Sprintf("%s accepted %s", actor.FirstName(), task.Title), now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeclineTask posts a decline chat message and relinquishes the actor's
// assignment. Acknowledgment state is untouched, and the task survives
// even with an empty assignee list.
func (e *Engine) DeclineTask(ctx context.Context, projectID string, actor domain.User, taskID, reason string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}

	now := e.now()
	content := "✗ Declined"
	if reason = strings.TrimSpace(reason); reason != "" {
		content = "✗ Declined: " + reason
	}
	message := domain.NewMessage(e.newID(), content, actor, now)
	message.Mine = true
	message.Task = task.Reference()
	project.Messages = append(project.Messages, message)

	task.RemoveAssignee(actor.ID)
	task.Touch(now)
	project.Touch(fmt.Sprintf("%s declined %s", actor.FirstName(), task.Title), now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// AskQuestion posts a plain chat message referencing the task. Empty text
// after trimming appends nothing.
func (e *Engine) AskQuestion(ctx context.Context, projectID string, actor domain.User, taskID, text string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	text = strings.TrimSpace(text)
	if task == nil || text == "" {
		return project, nil
	}

	now := e.now()
	message := domain.NewMessage(e.newID(), text, actor, now)
	message.Mine = true
	message.Task = task.Reference()
	project.Messages = append(project.Messages, message)
	project.Touch(fmt.Sprintf("%s: %s", actor.FirstName(), text), now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ToggleSubtaskStatus flips the subtask's done flag and posts a subtask
// event message carrying the reference snapshot.
func (e *Engine) ToggleSubtaskStatus(ctx context.Context, projectID string, actor domain.User, taskID, subtaskID string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}
	subtask := task.FindSubtask(subtaskID)
	if subtask == nil {
		return project, nil
	}

	now := e.now()
	subtask.Done = !subtask.Done
	task.Touch(now)

	kind := domain.KindSubtaskCompleted
	verb := "completed"
	if !subtask.Done {
		kind = domain.KindSubtaskReopened
		verb = "reopened"
	}
	content := fmt.Sprintf("%s subtask %q", verb, subtask.Title)
	message := domain.NewSubtaskEventMessage(e.newID(), kind, content, actor, now, *subtask.Reference())
	message.Task = task.Reference()
	project.Messages = append(project.Messages, message)
	project.Touch(content, now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// AddSubtask appends a subtask to the task's checklist. Empty titles and
// missing task ids are no-ops. Subtask edits do not re-mark the task
// unread (see package doc).
func (e *Engine) AddSubtask(ctx context.Context, projectID string, actor domain.User, taskID string, params SubtaskParams) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil || !domain.HasTitle(params.Title) {
		return project, nil
	}

	now := e.now()
	creator := actor
	task.Subtasks = append(task.Subtasks, domain.Subtask{
		ID:          e.newID(),
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Assignees:   append([]domain.User(nil), params.Assignees...),
		DueDate:     params.DueDate,
		Creator:     &creator,
		CreatedAt:   now,
	})
	task.Touch(now)
	project.Touch("", now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateSubtask edits the subtask in place, addressed by the
// (task id, subtask id) pair. Unresolved pairs and empty titles are no-ops.
func (e *Engine) UpdateSubtask(ctx context.Context, projectID string, actor domain.User, taskID, subtaskID string, params SubtaskParams) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}
	subtask := task.FindSubtask(subtaskID)
	if subtask == nil || !domain.HasTitle(params.Title) {
		return project, nil
	}

	now := e.now()
	subtask.Title = strings.TrimSpace(params.Title)
	subtask.Description = params.Description
	subtask.Assignees = append([]domain.User(nil), params.Assignees...)
	subtask.DueDate = params.DueDate
	task.Touch(now)
	project.Touch("", now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteSubtask removes the subtask from the owning task's list.
func (e *Engine) DeleteSubtask(ctx context.Context, projectID string, actor domain.User, taskID, subtaskID string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}
	idx := -1
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return project, nil
	}

	task.Subtasks = append(task.Subtasks[:idx], task.Subtasks[idx+1:]...)
	now := e.now()
	task.Touch(now)
	project.Touch("", now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ToggleSubtaskAssignee adds the user to the subtask's assignees, or
// removes them if already assigned.
func (e *Engine) ToggleSubtaskAssignee(ctx context.Context, projectID string, actor domain.User, taskID, subtaskID string, user domain.User) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return project, nil
	}
	subtask := task.FindSubtask(subtaskID)
	if subtask == nil {
		return project, nil
	}

	subtask.ToggleAssignee(user)
	now := e.now()
	task.Touch(now)
	project.Touch("", now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// MarkTaskAsRead clears the unread flag for one user. Read is transient
// UI state; acknowledgment is a durable accept/decline decision, and this
// touches neither it nor any timestamp.
func (e *Engine) MarkTaskAsRead(ctx context.Context, projectID, taskID, userID string) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsTaskUnread(userID, taskID) {
		return project, nil
	}
	project.MarkTaskRead(userID, taskID)
	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// NewTasksFor returns the user's "new task inbox" for one project:
// assigned and not yet acknowledged. Recomputed on every call.
func NewTasksFor(project *domain.Project, userID string) []domain.Task {
	if project == nil {
		return nil
	}
	var out []domain.Task
	for i := range project.Tasks {
		if project.Tasks[i].IsNewFor(userID) {
			out = append(out, project.Tasks[i].Clone())
		}
	}
	return out
}

// CanEditTask is the advisory permission check: the task's creator and
// the project admin (first member by convention) may edit. Nothing in the
// engine enforces it.
func CanEditTask(project *domain.Project, task *domain.Task, userID string) bool {
	if project == nil || task == nil {
		return false
	}
	if task.Creator != nil && task.Creator.ID == userID {
		return true
	}
	return project.AdminID() == userID
}

// CanToggleSubtask is advisory: assignees may toggle, and an unassigned
// subtask may be toggled by anyone.
func CanToggleSubtask(subtask *domain.Subtask, userID string) bool {
	if subtask == nil {
		return false
	}
	if len(subtask.Assignees) == 0 {
		return true
	}
	return subtask.IsAssignee(userID)
}

func (e *Engine) record(ctx context.Context, activityType domain.ActivityType, actor domain.User, project *domain.Project, task *domain.TaskReference, preview string) {
	if e.activities == nil {
		return
	}
	activity := domain.Activity{
		ID:          e.newID(),
		Type:        activityType,
		OccurredAt:  e.now(),
		Actor:       actor,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Task:        task,
		Preview:     preview,
	}
	if err := e.activities.Append(ctx, activity); err != nil {
		e.logger.Warn("failed to record activity", zap.String("type", string(activityType)), zap.Error(err))
	}
}
