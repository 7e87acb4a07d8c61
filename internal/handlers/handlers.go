// Package handlers exposes the services over gin. Handlers only bind input,
// resolve the acting identity and translate results; rules live in services.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/auth"
	mwauth "github.com/gravadigital/eventos-api/internal/middleware/auth"
	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/validation"
)

// bindJSON binds the body into req, answering 400 with field messages on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, validation.BindingError(err))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := validation.ParseID(c.Param(name), name)
	if err != nil {
		response.Error(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// actor returns the identity set by RequireAuth
func actor(c *gin.Context) (auth.Identity, bool) {
	identity, ok := mwauth.Identity(c)
	if !ok {
		response.UnauthorizedError(c, "authentication required")
	}
	return identity, ok
}
