package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// Response representa la estructura estándar de respuesta de la API
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse representa una respuesta de error
type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

const (
	CodeInternal     = "InternalError"
	CodeUnauthorized = "Unauthorized"
)

// SuccessResponse envía una respuesta exitosa
func SuccessResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OK envía un 200 con datos
func OK(c *gin.Context, data any) {
	SuccessResponse(c, http.StatusOK, "", data)
}

// Created envía un 201 con el recurso creado
func Created(c *gin.Context, message string, data any) {
	SuccessResponse(c, http.StatusCreated, message, data)
}

// NoContent envía un 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// StatusFor maps a business error kind to its HTTP status
func StatusFor(kind common.ErrorKind) int {
	switch kind {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindConflict, common.KindStateGuard:
		return http.StatusConflict
	case common.KindPermission:
		return http.StatusForbidden
	case common.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error translates err into the JSON error body and aborts the chain.
// Errors that are not business errors are logged and hidden behind a 500.
func Error(c *gin.Context, err error) {
	be, ok := common.AsBusinessError(err)
	if !ok {
		logger.HTTP().Error("Unhandled error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		ErrorResponseWithMessage(c, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	c.AbortWithStatusJSON(StatusFor(be.Kind), ErrorResponse{
		Success: false,
		Code:    be.Code,
		Message: be.Message,
		Data:    be.Data,
		Fields:  be.Fields,
	})
}

// ErrorResponseWithMessage envía una respuesta de error con mensaje personalizado
func ErrorResponseWithMessage(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// UnauthorizedError envía un error 401
func UnauthorizedError(c *gin.Context, message string) {
	ErrorResponseWithMessage(c, http.StatusUnauthorized, CodeUnauthorized, message)
}
