// Package messaging implements chat message creation, quoting and
// attachment sharing for a project's chat stream.
package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository"
)

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

type SendMessageParams struct {
	Content string
	Task    *domain.TaskReference
	Subtask *domain.SubtaskReference
	Quoted  *domain.QuotedMessage
}

// SendMessage appends a chat message with the given reference snapshots.
// Empty content after trimming is a silent no-op.
func (e *Engine) SendMessage(ctx context.Context, projectID string, actor domain.User, params SendMessageParams) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return project, nil
	}

	now := e.now()
	message := domain.NewMessage(e.newID(), content, actor, now)
	message.Mine = true
	message.Task = params.Task
	message.Subtask = params.Subtask
	message.Quoted = params.Quoted
	project.Messages = append(project.Messages, message)
	project.Touch(actor.FirstName()+": "+content, now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	e.record(ctx, actor, project, params.Task, content)
	return project, nil
}

type AttachmentParams struct {
	Media        domain.MediaType
	Category     domain.AttachmentCategory
	FileName     string
	FileSize     int64
	ThumbnailURL string
	FileURL      string
	TaskID       string
	SubtaskID    string
	Caption      string
}

// AddAttachments appends one or more attachments to the project and
// synthesizes a companion chat message per attachment. When an attachment
// links a task or subtask the message carries the matching reference
// badge.
func (e *Engine) AddAttachments(ctx context.Context, projectID string, actor domain.User, params []AttachmentParams) (*domain.Project, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return project, nil
	}

	now := e.now()
	var lastContent string
	for _, p := range params {
		attachment := domain.Attachment{
			ID:           e.newID(),
			Media:        p.Media,
			Category:     p.Category,
			FileName:     p.FileName,
			FileSize:     p.FileSize,
			UploadedBy:   actor,
			UploadedAt:   now,
			ThumbnailURL: p.ThumbnailURL,
			FileURL:      p.FileURL,
			TaskID:       p.TaskID,
			SubtaskID:    p.SubtaskID,
			Caption:      p.Caption,
		}
		project.Attachments = append(project.Attachments, attachment)

		content := shareContent(attachment)
		message := domain.NewMessage(e.newID(), content, actor, now)
		message.Mine = true
		summary := attachment.MessageSummary()
		message.Attachment = &summary
		if task := project.FindTask(p.TaskID); task != nil {
			message.Task = task.Reference()
			if subtask := task.FindSubtask(p.SubtaskID); subtask != nil {
				message.Subtask = subtask.Reference()
			}
		}
		project.Messages = append(project.Messages, message)
		lastContent = content
	}
	project.Touch(actor.FirstName()+": "+lastContent, now)

	if err := e.projects.Upsert(ctx, project); err != nil {
		return nil, err
	}
	e.logger.Info("attachments shared",
		zap.String("project_id", project.ID),
		zap.Int("count", len(params)))
	return project, nil
}

func shareContent(a domain.Attachment) string {
	content := "shared a file"
	if a.Media == domain.MediaImage {
		content = "shared a photo"
	}
	if a.Caption != "" {
		content += ": " + a.Caption
	}
	return content
}

func (e *Engine) record(ctx context.Context, actor domain.User, project *domain.Project, task *domain.TaskReference, preview string) {
	if e.activities == nil {
		return
	}
	activity := domain.Activity{
		ID:          e.newID(),
		Type:        domain.ActivityMessageSent,
		OccurredAt:  e.now(),
		Actor:       actor,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Task:        task,
		Preview:     preview,
	}
	if err := e.activities.Append(ctx, activity); err != nil {
		e.logger.Warn("failed to record activity", zap.Error(err))
	}
}
