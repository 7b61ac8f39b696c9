package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/repository/memory"
	"github.com/teamspace/backend/usecase/auth"
)

const testSecret = "test-secret"

func setup(t *testing.T) (*auth.UseCase, *memory.SessionStore) {
	t.Helper()
	users := memory.NewUserStore()
	require.NoError(t, users.Upsert(context.Background(), &domain.User{
		ID:          "user-alice",
		DisplayName: "Alice Carter",
	}))
	sessions := memory.NewSessionStore(time.Hour)
	return auth.New(users, sessions, testSecret, "teamspace", nil), sessions
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	uc, _ := setup(t)

	session, token, err := uc.Login(context.Background(), "user-alice", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-alice", session.UserID)
	assert.NotEmpty(t, session.ID)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-alice", claims["user_id"])
	assert.Equal(t, session.ID, claims["session_id"])
	assert.Equal(t, "teamspace", claims["iss"])
}

func TestLogin_UnknownUser(t *testing.T) {
	uc, _ := setup(t)

	_, _, err := uc.Login(context.Background(), "user-nobody", time.Hour)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSession_ExpiredIsEvicted(t *testing.T) {
	uc, sessions := setup(t)

	stale := &domain.Session{
		ID:        "session-stale",
		UserID:    "user-alice",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, sessions.Save(context.Background(), stale))

	_, err := uc.GetSession(context.Background(), stale.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Lazy eviction: the expired entry is gone from the store too.
	_, err = sessions.Get(context.Background(), stale.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRefreshSession(t *testing.T) {
	uc, _ := setup(t)

	session, err := uc.CreateSession(context.Background(), "user-alice", time.Minute)
	require.NoError(t, err)

	refreshed, err := uc.RefreshSession(context.Background(), session.ID, time.Hour)
	require.NoError(t, err)
	assert.True(t, refreshed.ExpiresAt.After(session.ExpiresAt))

	fetched, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, fetched.ExpiresAt.After(session.ExpiresAt))
}

func TestRevokeSession(t *testing.T) {
	uc, _ := setup(t)

	session, err := uc.CreateSession(context.Background(), "user-alice", time.Hour)
	require.NoError(t, err)
	require.NoError(t, uc.RevokeSession(context.Background(), session.ID))

	_, err = uc.GetSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
