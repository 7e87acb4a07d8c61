package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/services"
)

type UserHandler struct {
	userService        *services.UserService
	certificateService *services.CertificateService
}

func NewUserHandler(userService *services.UserService, certificateService *services.CertificateService) *UserHandler {
	return &UserHandler{
		userService:        userService,
		certificateService: certificateService,
	}
}

// Register handles POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

// MyCertificates handles GET /api/users/me/certificates
func (h *UserHandler) MyCertificates(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}

	certs, err := h.certificateService.ListForUser(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, certs)
}
