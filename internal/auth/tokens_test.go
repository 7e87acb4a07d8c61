package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/participant"
)

func TestIssueAndParse(t *testing.T) {
	now := time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Hour).WithClock(func() time.Time { return now })
	user := &participant.User{ID: uuid.New(), Role: participant.RoleAdmin}

	token, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	identity, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.True(t, identity.IsAdmin())
}

func TestParseExpired(t *testing.T) {
	now := time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Minute).WithClock(func() time.Time { return now })

	token, _, err := m.Issue(&participant.User{ID: uuid.New(), Role: participant.RoleParticipant})
	require.NoError(t, err)

	m.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager("one", time.Hour)
	verifier := NewTokenManager("two", time.Hour)

	token, _, err := issuer.Issue(&participant.User{ID: uuid.New(), Role: participant.RoleParticipant})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
