package domain

import "time"

type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaDocument MediaType = "document"
	MediaVideo    MediaType = "video"
	MediaContact  MediaType = "contact"
)

type AttachmentCategory string

const (
	CategoryReference AttachmentCategory = "reference"
	CategoryWork      AttachmentCategory = "work"
)

// Attachment is a file shared into a project or task. Project-level
// attachments may be ungrouped (no TaskID); task and subtask links are
// optional ids, not owning references.
type Attachment struct {
	ID           string             `json:"id"`
	Media        MediaType          `json:"media"`
	Category     AttachmentCategory `json:"category,omitempty"`
	FileName     string             `json:"file_name"`
	FileSize     int64              `json:"file_size,omitempty"`
	UploadedBy   User               `json:"uploaded_by"`
	UploadedAt   time.Time          `json:"uploaded_at"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty"`
	FileURL      string             `json:"file_url,omitempty"`
	TaskID       string             `json:"task_id,omitempty"`
	SubtaskID    string             `json:"subtask_id,omitempty"`
	Caption      string             `json:"caption,omitempty"`
}

// IsUngrouped reports whether the attachment is not linked to any task.
func (a Attachment) IsUngrouped() bool {
	return a.TaskID == ""
}

// MessageAttachment is the compact summary carried by a chat message when
// a file is shared.
type MessageAttachment struct {
	AttachmentID string    `json:"attachment_id"`
	Media        MediaType `json:"media"`
	FileName     string    `json:"file_name"`
	Caption      string    `json:"caption,omitempty"`
}

func (a Attachment) MessageSummary() MessageAttachment {
	return MessageAttachment{
		AttachmentID: a.ID,
		Media:        a.Media,
		FileName:     a.FileName,
		Caption:      a.Caption,
	}
}
