package domain

import (
	"sort"
	"time"
)

// Project is a collaboration space: members, a task list, a chat stream
// and shared attachments. The unread map tracks per-member task ids that
// still need the member's attention; it is transient UI state, distinct
// from task acknowledgment.
type Project struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	Members        []User              `json:"members"`
	Tasks          []Task              `json:"tasks,omitempty"`
	Messages       []Message           `json:"messages,omitempty"`
	Attachments    []Attachment        `json:"attachments,omitempty"`
	UnreadTasks    map[string][]string `json:"unread_tasks,omitempty"`
	LastActivityAt time.Time           `json:"last_activity_at"`
	Preview        string              `json:"preview,omitempty"`
}

func (p *Project) IsMember(userID string) bool {
	if p == nil {
		return false
	}
	for _, u := range p.Members {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// AdminID returns the id of the project's designated admin: by convention
// the first member. Empty for a memberless project.
func (p *Project) AdminID() string {
	if p == nil || len(p.Members) == 0 {
		return ""
	}
	return p.Members[0].ID
}

func (p *Project) FindTask(taskID string) *Task {
	if p == nil {
		return nil
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

func (p *Project) FindMessage(messageID string) *Message {
	if p == nil {
		return nil
	}
	for i := range p.Messages {
		if p.Messages[i].ID == messageID {
			return &p.Messages[i]
		}
	}
	return nil
}

// MarkTaskUnread flags the task for the member. Only members accumulate
// unread state; non-member ids are ignored to keep the unread keys a
// subset of the member set.
func (p *Project) MarkTaskUnread(userID, taskID string) {
	if p == nil || !p.IsMember(userID) {
		return
	}
	if p.UnreadTasks == nil {
		p.UnreadTasks = make(map[string][]string)
	}
	for _, id := range p.UnreadTasks[userID] {
		if id == taskID {
			return
		}
	}
	p.UnreadTasks[userID] = append(p.UnreadTasks[userID], taskID)
}

// MarkTaskRead clears the unread flag for one member. Acknowledgment
// state on the task itself is not touched.
func (p *Project) MarkTaskRead(userID, taskID string) {
	if p == nil || p.UnreadTasks == nil {
		return
	}
	ids := p.UnreadTasks[userID]
	for i, id := range ids {
		if id == taskID {
			p.UnreadTasks[userID] = append(ids[:i], ids[i+1:]...)
			if len(p.UnreadTasks[userID]) == 0 {
				delete(p.UnreadTasks, userID)
			}
			return
		}
	}
}

func (p *Project) IsTaskUnread(userID, taskID string) bool {
	if p == nil || p.UnreadTasks == nil {
		return false
	}
	for _, id := range p.UnreadTasks[userID] {
		if id == taskID {
			return true
		}
	}
	return false
}

// PurgeUnread removes the task id from every member's unread set. Called
// on task deletion to keep unread values a subset of live task ids.
func (p *Project) PurgeUnread(taskID string) {
	if p == nil {
		return
	}
	for userID, ids := range p.UnreadTasks {
		kept := ids[:0]
		for _, id := range ids {
			if id != taskID {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(p.UnreadTasks, userID)
		} else {
			p.UnreadTasks[userID] = kept
		}
	}
}

// ChatTimeline returns the messages in display order: ascending by
// timestamp. Insertion order is expected to be chronological already, but
// display must not rely on it.
func (p *Project) ChatTimeline() []Message {
	if p == nil {
		return nil
	}
	out := make([]Message, len(p.Messages))
	copy(out, p.Messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out
}

// GroupAttachmentsByTask buckets project attachments by their linked task
// id. Ungrouped attachments land under the empty key.
func (p *Project) GroupAttachmentsByTask() map[string][]Attachment {
	if p == nil {
		return nil
	}
	groups := make(map[string][]Attachment)
	for _, a := range p.Attachments {
		groups[a.TaskID] = append(groups[a.TaskID], a)
	}
	return groups
}

// Touch records fresh activity on the project.
func (p *Project) Touch(preview string, at time.Time) {
	if p == nil {
		return
	}
	p.LastActivityAt = at
	if preview != "" {
		p.Preview = preview
	}
}

// Clone returns a deep copy. Store reads hand out clones so callers hold
// snapshots and must re-read after mutating through the engines.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Members = append([]User(nil), p.Members...)
	out.Tasks = make([]Task, 0, len(p.Tasks))
	for i := range p.Tasks {
		out.Tasks = append(out.Tasks, p.Tasks[i].Clone())
	}
	out.Messages = make([]Message, 0, len(p.Messages))
	for _, m := range p.Messages {
		out.Messages = append(out.Messages, m.Clone())
	}
	out.Attachments = append([]Attachment(nil), p.Attachments...)
	if p.UnreadTasks != nil {
		out.UnreadTasks = make(map[string][]string, len(p.UnreadTasks))
		for userID, ids := range p.UnreadTasks {
			out.UnreadTasks[userID] = append([]string(nil), ids...)
		}
	}
	return &out
}
