package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
)

func setup(t *testing.T, now *time.Time) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", time.Hour).WithClock(func() time.Time { return *now })

	r := gin.New()
	r.GET("/me", RequireAuth(tokens), func(c *gin.Context) {
		identity, ok := Identity(c)
		require.True(t, ok)
		c.String(http.StatusOK, identity.UserID.String())
	})
	return r, tokens
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	r, tokens := setup(t, &now)

	user := participant.NewUser("Ana", "ana@example.com", "hash")
	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID.String(), w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing bearer token")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "Basic "+token).Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token+"x").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token has expired")
	})
}
