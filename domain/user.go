package domain

import (
	"strings"
	"time"
)

// User represents a member of the workspace. Identity is immutable once
// registered; only the display name may change.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Handle      string    `json:"handle,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FirstName returns the leading token of the display name, used for
// compact chat previews ("Alice: on my way").
func (u User) FirstName() string {
	name := strings.TrimSpace(u.DisplayName)
	if idx := strings.IndexAny(name, " \t"); idx > 0 {
		return name[:idx]
	}
	return name
}
