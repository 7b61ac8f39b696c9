package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamspace/backend/domain"
)

func TestMessageValidate(t *testing.T) {
	sender := domain.User{ID: "user-alice", DisplayName: "Alice Carter"}
	at := time.Now()

	regular := domain.NewMessage("m1", "hello", sender, at)
	assert.NoError(t, regular.Validate())

	event := domain.NewSubtaskEventMessage("m2", domain.KindSubtaskCompleted, `completed subtask "Buy paint"`, sender, at, domain.SubtaskReference{
		SubtaskID: "s1",
		Title:     "Buy paint",
	})
	assert.NoError(t, event.Validate())

	// The pairing invariant: event kinds require a subtask reference.
	broken := event
	broken.Subtask = nil
	assert.Error(t, broken.Validate())

	unknown := regular
	unknown.Kind = "carrier_pigeon"
	assert.Error(t, unknown.Validate())
}

func TestQuoteMessageIsSnapshot(t *testing.T) {
	original := domain.NewMessage("m1", "original wording", domain.User{
		ID:          "user-alice",
		DisplayName: "Alice Carter",
	}, time.Now())

	quote := domain.QuoteMessage(original)
	original.Content = "edited wording"
	original.Sender.DisplayName = "Renamed"

	assert.Equal(t, "m1", quote.MessageID)
	assert.Equal(t, "original wording", quote.Content)
	assert.Equal(t, "Alice Carter", quote.SenderName)
}

func TestTaskReferenceIsSnapshot(t *testing.T) {
	task := domain.Task{ID: "t1", Title: "Paint wall"}
	ref := task.Reference()
	require.NotNil(t, ref)

	task.Title = "Paint ceiling"
	assert.Equal(t, "Paint wall", ref.Title)
	assert.Equal(t, "t1", ref.TaskID)
}

func TestMessageCloneDoesNotAlias(t *testing.T) {
	msg := domain.NewMessage("m1", "hello", domain.User{ID: "user-alice"}, time.Now())
	msg.Task = &domain.TaskReference{TaskID: "t1", Title: "Paint wall"}
	msg.Quoted = &domain.QuotedMessage{MessageID: "m0", Content: "earlier"}

	clone := msg.Clone()
	clone.Task.Title = "changed"
	clone.Quoted.Content = "changed"

	assert.Equal(t, "Paint wall", msg.Task.Title)
	assert.Equal(t, "earlier", msg.Quoted.Content)
}

func TestUserFirstName(t *testing.T) {
	assert.Equal(t, "Alice", domain.User{DisplayName: "Alice Carter"}.FirstName())
	assert.Equal(t, "Bob", domain.User{DisplayName: "Bob"}.FirstName())
	assert.Empty(t, domain.User{}.FirstName())
}
