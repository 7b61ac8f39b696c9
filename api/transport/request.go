package transport

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type ProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type SubtaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssigneeIDs []string `json:"assignee_ids"`
	DueDate     string   `json:"due_date"`
}

type TaskRequest struct {
	Title       string           `json:"title"`
	AssigneeIDs []string         `json:"assignee_ids"`
	DueDate     string           `json:"due_date"`
	Notes       string           `json:"notes"`
	Subtasks    []SubtaskRequest `json:"subtasks"`
}

// TaskNoteRequest carries the optional free text for accept, decline and
// ask-a-question flows.
type TaskNoteRequest struct {
	Message string `json:"message"`
}

type MessageRequest struct {
	Content         string `json:"content"`
	TaskID          string `json:"task_id"`
	SubtaskID       string `json:"subtask_id"`
	QuotedMessageID string `json:"quoted_message_id"`
}

type AttachmentRequest struct {
	Media        string `json:"media"`
	Category     string `json:"category"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
	ThumbnailURL string `json:"thumbnail_url"`
	FileURL      string `json:"file_url"`
	TaskID       string `json:"task_id"`
	SubtaskID    string `json:"subtask_id"`
	Caption      string `json:"caption"`
}

type AttachmentsRequest struct {
	Attachments []AttachmentRequest `json:"attachments"`
}

type SubtaskAssigneeRequest struct {
	UserID string `json:"user_id"`
}
