// Package auth provides the bearer token middleware and the accessors handlers
// use to read the acting identity.
package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/response"
)

const IdentityKey = "identity"

// RequireAuth rejects requests without a valid bearer token with 401
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.UnauthorizedError(c, "missing bearer token")
			return
		}

		identity, err := tokens.Parse(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token has expired"
			}
			response.UnauthorizedError(c, msg)
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// Identity returns the identity set by the middleware
func Identity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
