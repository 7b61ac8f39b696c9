package domain

import "time"

// MessageKind tags the message variant. Subtask event kinds must carry a
// SubtaskReference; constructors enforce the pairing so an invalid
// combination cannot be built through the public API.
type MessageKind string

const (
	KindRegular          MessageKind = "regular"
	KindSubtaskCompleted MessageKind = "subtask_completed"
	KindSubtaskReopened  MessageKind = "subtask_reopened"
)

// TaskReference is an immutable id+title snapshot embedded in a message.
// Renaming the task later does not rewrite chat history.
type TaskReference struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

func (t *Task) Reference() *TaskReference {
	if t == nil {
		return nil
	}
	return &TaskReference{TaskID: t.ID, Title: t.Title}
}

// SubtaskReference is the subtask counterpart of TaskReference.
type SubtaskReference struct {
	SubtaskID string `json:"subtask_id"`
	Title     string `json:"title"`
}

func (s *Subtask) Reference() *SubtaskReference {
	if s == nil {
		return nil
	}
	return &SubtaskReference{SubtaskID: s.ID, Title: s.Title}
}

// QuotedMessage is a value snapshot of a quoted message, captured at quote
// time. It never follows later edits to the original sender or content.
type QuotedMessage struct {
	MessageID  string `json:"message_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
}

// QuoteMessage captures an immutable quote snapshot of m.
func QuoteMessage(m Message) QuotedMessage {
	return QuotedMessage{
		MessageID:  m.ID,
		SenderName: m.Sender.DisplayName,
		Content:    m.Content,
	}
}

// Message is one entry in a project's chat stream. Append-only: once
// created a message is never mutated or reordered in storage; display
// ordering is by timestamp (see Project.ChatTimeline).
type Message struct {
	ID         string             `json:"id"`
	Content    string             `json:"content"`
	Sender     User               `json:"sender"`
	SentAt     time.Time          `json:"sent_at"`
	Mine       bool               `json:"mine"`
	Kind       MessageKind        `json:"kind"`
	Task       *TaskReference     `json:"task,omitempty"`
	Subtask    *SubtaskReference  `json:"subtask,omitempty"`
	Quoted     *QuotedMessage     `json:"quoted,omitempty"`
	Attachment *MessageAttachment `json:"attachment,omitempty"`
}

// NewMessage builds a regular chat message.
func NewMessage(id, content string, sender User, at time.Time) Message {
	return Message{
		ID:      id,
		Content: content,
		Sender:  sender,
		SentAt:  at,
		Kind:    KindRegular,
	}
}

// NewSubtaskEventMessage builds a subtask lifecycle message. The subtask
// reference is mandatory; callers pass the snapshot taken at event time.
func NewSubtaskEventMessage(id string, kind MessageKind, content string, sender User, at time.Time, ref SubtaskReference) Message {
	return Message{
		ID:      id,
		Content: content,
		Sender:  sender,
		SentAt:  at,
		Kind:    kind,
		Subtask: &ref,
	}
}

// Validate checks the kind/payload pairing invariant.
func (m Message) Validate() error {
	switch m.Kind {
	case KindRegular:
		return nil
	case KindSubtaskCompleted, KindSubtaskReopened:
		if m.Subtask == nil {
			return NewError(ErrCodeInvalid, "subtask event message missing subtask reference")
		}
		return nil
	default:
		return NewError(ErrCodeInvalid, "unknown message kind")
	}
}

func (m Message) Clone() Message {
	out := m
	if m.Task != nil {
		ref := *m.Task
		out.Task = &ref
	}
	if m.Subtask != nil {
		ref := *m.Subtask
		out.Subtask = &ref
	}
	if m.Quoted != nil {
		q := *m.Quoted
		out.Quoted = &q
	}
	if m.Attachment != nil {
		att := *m.Attachment
		out.Attachment = &att
	}
	return out
}
